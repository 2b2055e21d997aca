package bus

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/yungbote/wellbore-architecture/internal/realtime"
)

// MemoryBus delivers events in-process. It is used when no Redis address is
// configured, and in tests.
type MemoryBus struct {
	mu        sync.Mutex
	listeners []func(realtime.ChangeEvent)
	published []realtime.ChangeEvent
}

func NewMemoryBus() *MemoryBus { return &MemoryBus{} }

func (b *MemoryBus) Publish(_ context.Context, ev realtime.ChangeEvent) error {
	b.mu.Lock()
	b.published = append(b.published, ev)
	listeners := slices.Clone(b.listeners)
	b.mu.Unlock()
	for _, l := range listeners {
		l(ev)
	}
	return nil
}

func (b *MemoryBus) StartForwarder(_ context.Context, onEvent func(ev realtime.ChangeEvent)) error {
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}
	b.mu.Lock()
	b.listeners = append(b.listeners, onEvent)
	b.mu.Unlock()
	return nil
}

// Published returns a copy of every event seen so far.
func (b *MemoryBus) Published() []realtime.ChangeEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]realtime.ChangeEvent(nil), b.published...)
}

func (b *MemoryBus) Close() error { return nil }
