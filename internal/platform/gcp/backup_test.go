package gcp

import "testing"

func TestObjectKey(t *testing.T) {
	b := &BackupBucket{prefix: "wba/backups"}
	if got := b.ObjectKey("../home/WellBoreArchitecture-2024-05-01_10-00-00.db"); got != "wba/backups/WellBoreArchitecture-2024-05-01_10-00-00.db" {
		t.Fatalf("got=%q", got)
	}
	b.prefix = ""
	if got := b.ObjectKey("/var/lib/wba/x.db"); got != "x.db" {
		t.Fatalf("got=%q", got)
	}
}

func TestClientOptionsInlineJSON(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", `{"type":"service_account"}`)
	if got := ClientOptions(); len(got) != 1 {
		t.Fatalf("expected one option, got=%d", len(got))
	}
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	if got := ClientOptions(); got != nil {
		t.Fatalf("expected no options, got=%d", len(got))
	}
}
