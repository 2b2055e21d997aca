package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/wellbore-architecture/internal/data/db"
	"github.com/yungbote/wellbore-architecture/internal/data/repos"
	"github.com/yungbote/wellbore-architecture/internal/data/repos/testutil"
	"github.com/yungbote/wellbore-architecture/internal/observability"
	"github.com/yungbote/wellbore-architecture/internal/realtime"
	"github.com/yungbote/wellbore-architecture/internal/realtime/bus"
)

type stubLease struct {
	grant    bool
	err      error
	released int
}

func (l *stubLease) Acquire(context.Context, time.Duration) (bool, error) { return l.grant, l.err }

func (l *stubLease) Release(context.Context) error {
	l.released++
	return nil
}

func seedModified(t *testing.T, conn *db.Connector, repo repos.WellBoreArchitectureRepo, modified *time.Time) uuid.UUID {
	t.Helper()
	id := uuid.New()
	w := testutil.Architecture(id, "seed")
	w.LastModificationDate = modified
	err := conn.Transaction(context.Background(), func(tx *gorm.DB) error {
		return repo.Insert(context.Background(), tx, w)
	})
	require.NoError(t, err)
	return id
}

func exists(t *testing.T, conn *db.Connector, repo repos.WellBoreArchitectureRepo, id uuid.UUID) bool {
	t.Helper()
	var ok bool
	err := conn.Do(context.Background(), func(gdb *gorm.DB) error {
		var err error
		ok, err = repo.Exists(context.Background(), gdb, id)
		return err
	})
	require.NoError(t, err)
	return ok
}

func at(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestSweepOnceRemovesExpiredRows(t *testing.T) {
	log := testutil.Logger(t)
	conn := testutil.Connector(t)
	repo := repos.NewWellBoreArchitectureRepo(log)
	events := bus.NewMemoryBus()

	expired := seedModified(t, conn, repo, at(2024, time.January, 10))
	undated := seedModified(t, conn, repo, nil)
	fresh := seedModified(t, conn, repo, at(2024, time.June, 20))

	s := NewSweeper(Config{}, conn, log, repo, nil, events, observability.NewMetrics())
	s.now = func() time.Time { return time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC) }

	removed, err := s.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)
	assert.False(t, exists(t, conn, repo, expired))
	assert.False(t, exists(t, conn, repo, undated))
	assert.True(t, exists(t, conn, repo, fresh))

	published := events.Published()
	require.Len(t, published, 1)
	assert.Equal(t, realtime.ChangeSwept, published[0].Kind)
	assert.EqualValues(t, 2, published[0].Count)
}

func TestSweepOnceSkipsWithoutLease(t *testing.T) {
	log := testutil.Logger(t)
	conn := testutil.Connector(t)
	repo := repos.NewWellBoreArchitectureRepo(log)
	id := seedModified(t, conn, repo, at(2020, time.January, 1))

	lease := &stubLease{grant: false}
	s := NewSweeper(Config{}, conn, log, repo, lease, nil, nil)
	removed, err := s.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.True(t, exists(t, conn, repo, id))
	assert.Zero(t, lease.released)

	lease.grant = true
	removed, err = s.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.Equal(t, 1, lease.released)
}

func TestSweepOnceLeaseError(t *testing.T) {
	log := testutil.Logger(t)
	s := NewSweeper(Config{}, testutil.Connector(t), log, repos.NewWellBoreArchitectureRepo(log), &stubLease{err: errors.New("redis down")}, nil, nil)
	_, err := s.SweepOnce(context.Background())
	assert.ErrorContains(t, err, "redis down")
}

func TestRunSweepsOnEachTickUntilCancelled(t *testing.T) {
	log := testutil.Logger(t)
	conn := testutil.Connector(t)
	repo := repos.NewWellBoreArchitectureRepo(log)
	id := seedModified(t, conn, repo, at(2020, time.January, 1))

	s := NewSweeper(Config{Interval: 10 * time.Millisecond}, conn, log, repo, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return !exists(t, conn, repo, id) }, 2*time.Second, 20*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("sweeper did not stop after cancel")
	}
}

func TestRunSweepsAtStartup(t *testing.T) {
	log := testutil.Logger(t)
	conn := testutil.Connector(t)
	repo := repos.NewWellBoreArchitectureRepo(log)
	id := seedModified(t, conn, repo, at(2020, time.January, 1))

	s := NewSweeper(Config{Interval: time.Hour}, conn, log, repo, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return !exists(t, conn, repo, id) }, 2*time.Second, 20*time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("sweeper did not stop after cancel")
	}
}

func TestNewSweeperDefaults(t *testing.T) {
	s := NewSweeper(Config{}, nil, testutil.Logger(t), nil, nil, nil, nil)
	assert.Equal(t, DefaultInterval, s.cfg.Interval)
	assert.Equal(t, DefaultWindow, s.cfg.Window)
}
