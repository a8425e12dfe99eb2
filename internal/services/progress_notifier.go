package services

import (
	"context"
	"time"

	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"github.com/yungbote/thorbis-backend/internal/realtime"
	"github.com/yungbote/thorbis-backend/internal/realtime/bus"
)

type ProgressNotifier interface {
	Notify(ctx context.Context, evt realtime.ProgressEvent)
}

type busNotifier struct {
	log *logger.Logger
	bus bus.Bus
}

func NewProgressNotifier(baseLog *logger.Logger, b bus.Bus) ProgressNotifier {
	if b == nil {
		b = bus.NewNoopBus()
	}
	return &busNotifier{log: baseLog.With("service", "ProgressNotifier"), bus: b}
}

// Notify publishes without surfacing errors; a lost event is only logged.
func (n *busNotifier) Notify(ctx context.Context, evt realtime.ProgressEvent) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	if err := n.bus.Publish(ctx, evt); err != nil {
		n.log.Warn("progress event publish failed", "type", evt.Type, "user_id", evt.UserID, "error", err)
	}
}
