package bus

import (
	"context"

	"github.com/yungbote/wellbore-architecture/internal/realtime"
)

// Bus fans change events out to other service instances and listeners.
type Bus interface {
	Publish(ctx context.Context, ev realtime.ChangeEvent) error
	StartForwarder(ctx context.Context, onEvent func(ev realtime.ChangeEvent)) error
	Close() error
}
