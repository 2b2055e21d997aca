package ctxutil

import (
	"context"
	"testing"
)

func TestLogFields(t *testing.T) {
	if got := LogFields(context.Background()); got != nil {
		t.Fatalf("expected no fields, got=%v", got)
	}
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t-1", RequestID: "r-1"})
	got := LogFields(ctx)
	want := []interface{}{"trace_id", "t-1", "request_id", "r-1"}
	if len(got) != len(want) {
		t.Fatalf("fields: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("field %d: got=%v want=%v", i, got[i], want[i])
		}
	}
	if td := GetTraceData(ctx); td == nil || td.RequestID != "r-1" {
		t.Fatalf("GetTraceData: got=%+v", td)
	}
}
