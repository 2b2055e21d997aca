package retention

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/wellbore-architecture/internal/data/repos"
	"github.com/yungbote/wellbore-architecture/internal/observability"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
	"github.com/yungbote/wellbore-architecture/internal/realtime"
)

const (
	DefaultInterval = 24 * time.Hour
	DefaultWindow   = 90 * 24 * time.Hour
)

type Config struct {
	Interval time.Duration
	Window   time.Duration
	// LeaseTTL bounds how long a crashed holder blocks other replicas.
	LeaseTTL time.Duration
}

type Store interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type Publisher interface {
	Publish(ctx context.Context, ev realtime.ChangeEvent) error
}

type Sweeper struct {
	cfg       Config
	store     Store
	log       *logger.Logger
	repo      repos.WellBoreArchitectureRepo
	lease     Lease
	publisher Publisher
	metrics   *observability.Metrics
	now       func() time.Time
}

// NewSweeper builds the retention job. lease, publisher and metrics may be
// nil.
func NewSweeper(
	cfg Config,
	store Store,
	baseLog *logger.Logger,
	repo repos.WellBoreArchitectureRepo,
	lease Lease,
	publisher Publisher,
	metrics *observability.Metrics,
) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = 10 * time.Minute
	}
	return &Sweeper{
		cfg:       cfg,
		store:     store,
		log:       baseLog.With("component", "RetentionSweeper"),
		repo:      repo,
		lease:     lease,
		publisher: publisher,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps immediately, then once per interval until ctx is cancelled. A sweep in progress
// is not interrupted by cancellation. Failures are logged and the next tick
// runs regardless.
func (s *Sweeper) Run(ctx context.Context) error {
	s.log.Info("Retention sweeper started", "interval", s.cfg.Interval, "window", s.cfg.Window)
	s.tick(context.WithoutCancel(ctx))
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Retention sweeper stopped")
			return nil
		case <-ticker.C:
			s.tick(context.WithoutCancel(ctx))
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Retention sweep panic", "panic", r)
		}
	}()
	if _, err := s.SweepOnce(ctx); err != nil {
		s.log.Error("Retention sweep failed", "error", err)
	}
}

// SweepOnce deletes every record last modified before now minus the
// retention window, plus records without a modification date. It returns
// the number of rows removed. When another holder owns the lease the sweep
// is skipped.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	start := time.Now()
	if s.lease != nil {
		ok, err := s.lease.Acquire(ctx, s.cfg.LeaseTTL)
		if err != nil {
			s.metrics.ObserveSweep(0, err, time.Since(start))
			return 0, fmt.Errorf("acquire retention lease: %w", err)
		}
		if !ok {
			s.log.Debug("Retention sweep skipped: lease held elsewhere")
			return 0, nil
		}
		defer func() {
			if err := s.lease.Release(ctx); err != nil {
				s.log.Warn("Releasing retention lease failed", "error", err)
			}
		}()
	}

	cutoff := s.now().Add(-s.cfg.Window)
	var removed int64
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		removed, err = s.repo.DeleteModifiedBefore(ctx, tx, cutoff)
		return err
	})
	s.metrics.ObserveSweep(removed, err, time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("delete expired records: %w", err)
	}
	s.log.Info("Retention sweep done", "cutoff", cutoff, "removed", removed)
	if removed > 0 && s.publisher != nil {
		ev := realtime.ChangeEvent{Kind: realtime.ChangeSwept, Count: removed, At: s.now()}
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.log.Warn("Publishing sweep event failed", "error", err)
		}
	}
	return removed, nil
}
