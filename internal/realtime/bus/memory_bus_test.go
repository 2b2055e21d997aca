package bus

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/wellbore-architecture/internal/realtime"
)

func TestMemoryBusForwardsAndRecords(t *testing.T) {
	b := NewMemoryBus()
	var got []realtime.ChangeEvent
	if err := b.StartForwarder(context.Background(), func(ev realtime.ChangeEvent) {
		got = append(got, ev)
	}); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}

	ev := realtime.ChangeEvent{Kind: realtime.ChangeCreated, ID: uuid.New()}
	if err := b.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 1 || got[0].ID != ev.ID {
		t.Fatalf("listener: got=%v", got)
	}
	if p := b.Published(); len(p) != 1 || p[0].Kind != realtime.ChangeCreated {
		t.Fatalf("published: got=%v", p)
	}
	if err := b.StartForwarder(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil callback")
	}
}

func TestClientOnlyForRedis(t *testing.T) {
	if Client(NewMemoryBus()) != nil {
		t.Fatalf("memory bus has no redis client")
	}
}

func TestMemoryBusListenerMayRegisterDuringPublish(t *testing.T) {
	b := NewMemoryBus()
	var late int
	if err := b.StartForwarder(context.Background(), func(realtime.ChangeEvent) {
		_ = b.StartForwarder(context.Background(), func(realtime.ChangeEvent) { late++ })
	}); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	ev := realtime.ChangeEvent{Kind: realtime.ChangeDeleted, ID: uuid.New()}
	if err := b.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if late != 0 {
		t.Fatalf("listener added during publish saw the same event")
	}
	if err := b.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if late != 1 {
		t.Fatalf("late listener: got=%d want=1", late)
	}
}
