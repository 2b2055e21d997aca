package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/wellbore-architecture/internal/jobs/retention"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
	"github.com/yungbote/wellbore-architecture/internal/realtime/bus"
)

type Clients struct {
	Bus    bus.Bus
	Lease  retention.Lease
	Backup closableSink
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	var changeBus bus.Bus
	var lease retention.Lease
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		b, err := bus.NewRedisBus(ctx, bus.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		}, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis change bus: %w", err)
		}
		l, err := retention.NewRedisLease(bus.Client(b), cfg.Redis.LeaseKey)
		if err != nil {
			_ = b.Close()
			return Clients{}, fmt.Errorf("init retention lease: %w", err)
		}
		changeBus, lease = b, l
	} else {
		changeBus = bus.NewMemoryBus()
	}

	// Gcs
	backup, err := resolveBackupSink(ctx, log, cfg.Backup)
	if err != nil {
		_ = changeBus.Close()
		return Clients{}, err
	}

	return Clients{Bus: changeBus, Lease: lease, Backup: backup}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Bus != nil {
		_ = c.Bus.Close()
	}
	if c.Backup != nil {
		_ = c.Backup.Close()
	}
}
