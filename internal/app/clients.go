package app

import (
	"fmt"

	"github.com/yungbote/thorbis-backend/internal/pkg/logger"
	"github.com/yungbote/thorbis-backend/internal/realtime/bus"
)

type Clients struct {
	ProgressBus bus.Bus
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	b, err := bus.NewProgressBus(log, cfg.Redis)
	if err != nil {
		return Clients{}, fmt.Errorf("init progress bus: %w", err)
	}
	if cfg.Redis.Addr != "" {
		log.Info("Progress events publish to redis", "channel", cfg.Redis.Channel)
	}
	return Clients{ProgressBus: b}, nil
}

func (c Clients) Close() {
	if c.ProgressBus != nil {
		_ = c.ProgressBus.Close()
	}
}
