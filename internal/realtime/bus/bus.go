package bus

import (
	"context"

	"github.com/yungbote/thorbis-backend/internal/realtime"
)

type Bus interface {
	Publish(ctx context.Context, evt realtime.ProgressEvent) error
	Close() error
}

type noopBus struct{}

// NewNoopBus returns a bus that drops every event. Used when no broker is configured.
func NewNoopBus() Bus { return noopBus{} }

func (noopBus) Publish(ctx context.Context, evt realtime.ProgressEvent) error { return nil }

func (noopBus) Close() error { return nil }
