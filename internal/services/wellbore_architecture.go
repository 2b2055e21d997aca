package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/wellbore-architecture/internal/data/db"
	"github.com/yungbote/wellbore-architecture/internal/data/repos"
	"github.com/yungbote/wellbore-architecture/internal/data/repos/wellbore"
	types "github.com/yungbote/wellbore-architecture/internal/domain/wellbore"
	"github.com/yungbote/wellbore-architecture/internal/observability"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
	"github.com/yungbote/wellbore-architecture/internal/realtime"
)

var (
	ErrInvalidID      = errors.New("invalid or missing well-bore architecture id")
	ErrInvalidPayload = errors.New("invalid well-bore architecture payload")
	ErrIDMismatch     = errors.New("payload id does not match path id")
	ErrNotFound       = errors.New("well-bore architecture not found")
	ErrConflict       = errors.New("well-bore architecture already exists")
	ErrGateRejected   = errors.New("well-bore architecture rejected: no surface section")
	ErrStore          = errors.New("well-bore architecture store failure")
)

// Store hands out one connection per call. *db.Connector implements it.
type Store interface {
	Do(ctx context.Context, fn func(gdb *gorm.DB) error) error
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ChangePublisher interface {
	Publish(ctx context.Context, ev realtime.ChangeEvent) error
}

type WellBoreArchitectureService interface {
	Count(ctx context.Context) (int64, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
	ListMetaInfo(ctx context.Context) ([]*types.MetaInfo, error)
	ListLight(ctx context.Context) ([]*types.WellBoreArchitectureLight, error)
	ListAll(ctx context.Context) ([]*types.WellBoreArchitecture, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.WellBoreArchitecture, error)
	Realize(ctx context.Context, id uuid.UUID) (*types.WellBoreArchitectureRealization, error)
	Create(ctx context.Context, w *types.WellBoreArchitecture) error
	UpdateByID(ctx context.Context, id uuid.UUID, w *types.WellBoreArchitecture) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context) (int64, error)
}

type wellBoreArchitectureService struct {
	store     Store
	log       *logger.Logger
	repo      repos.WellBoreArchitectureRepo
	publisher ChangePublisher
	metrics   *observability.Metrics
	now       func() time.Time
}

// NewWellBoreArchitectureService wires the record manager. publisher and
// metrics may be nil.
func NewWellBoreArchitectureService(
	store Store,
	log *logger.Logger,
	repo repos.WellBoreArchitectureRepo,
	publisher ChangePublisher,
	metrics *observability.Metrics,
) WellBoreArchitectureService {
	serviceLog := log.With("service", "WellBoreArchitectureService")
	return &wellBoreArchitectureService{
		store:     store,
		log:       serviceLog,
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *wellBoreArchitectureService) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.store.Do(ctx, func(gdb *gorm.DB) error {
		var err error
		count, err = s.repo.Count(ctx, gdb)
		return err
	})
	if err != nil {
		return 0, s.storeFailure("count", err)
	}
	s.metrics.ObserveRecordOp("count", "ok")
	return count, nil
}

func (s *wellBoreArchitectureService) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := s.store.Do(ctx, func(gdb *gorm.DB) error {
		found, err := s.repo.ListIDs(ctx, gdb)
		if err != nil {
			return err
		}
		ids = append(ids, found...)
		return nil
	})
	if err != nil {
		return nil, s.storeFailure("list_ids", err)
	}
	s.metrics.ObserveRecordOp("list_ids", "ok")
	return ids, nil
}

func (s *wellBoreArchitectureService) ListMetaInfo(ctx context.Context) ([]*types.MetaInfo, error) {
	out := []*types.MetaInfo{}
	err := s.store.Do(ctx, func(gdb *gorm.DB) error {
		found, err := s.repo.ListMetaInfo(ctx, gdb)
		if err != nil {
			return err
		}
		out = append(out, found...)
		return nil
	})
	if err != nil {
		return nil, s.storeFailure("list_meta_info", err)
	}
	s.metrics.ObserveRecordOp("list_meta_info", "ok")
	return out, nil
}

func (s *wellBoreArchitectureService) ListLight(ctx context.Context) ([]*types.WellBoreArchitectureLight, error) {
	out := []*types.WellBoreArchitectureLight{}
	err := s.store.Do(ctx, func(gdb *gorm.DB) error {
		found, err := s.repo.ListLight(ctx, gdb)
		if err != nil {
			return err
		}
		out = append(out, found...)
		return nil
	})
	if err != nil {
		return nil, s.storeFailure("list_light", err)
	}
	s.metrics.ObserveRecordOp("list_light", "ok")
	return out, nil
}

func (s *wellBoreArchitectureService) ListAll(ctx context.Context) ([]*types.WellBoreArchitecture, error) {
	out := []*types.WellBoreArchitecture{}
	err := s.store.Do(ctx, func(gdb *gorm.DB) error {
		found, err := s.repo.ListAll(ctx, gdb)
		if err != nil {
			return err
		}
		out = append(out, found...)
		return nil
	})
	if err != nil {
		return nil, s.storeFailure("list_all", err)
	}
	s.metrics.ObserveRecordOp("list_all", "ok")
	return out, nil
}

func (s *wellBoreArchitectureService) GetByID(ctx context.Context, id uuid.UUID) (*types.WellBoreArchitecture, error) {
	if id == uuid.Nil {
		s.metrics.ObserveRecordOp("get", "invalid")
		return nil, ErrInvalidID
	}
	var w *types.WellBoreArchitecture
	err := s.store.Do(ctx, func(gdb *gorm.DB) error {
		var err error
		w, err = s.repo.GetByID(ctx, gdb, id)
		return err
	})
	switch {
	case errors.Is(err, wellbore.ErrNotFound):
		s.log.Debug("Well-bore architecture not found", "id", id)
		s.metrics.ObserveRecordOp("get", "not_found")
		return nil, ErrNotFound
	case err != nil:
		return nil, s.storeFailure("get", err, "id", id)
	}
	s.metrics.ObserveRecordOp("get", "ok")
	return w, nil
}

func (s *wellBoreArchitectureService) Realize(ctx context.Context, id uuid.UUID) (*types.WellBoreArchitectureRealization, error) {
	w, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return w.Realize(), nil
}

func (s *wellBoreArchitectureService) Create(ctx context.Context, w *types.WellBoreArchitecture) error {
	if w == nil || w.ID() == uuid.Nil {
		s.log.Warn("Create rejected: missing id")
		s.metrics.ObserveRecordOp("create", "invalid")
		return ErrInvalidID
	}
	id := w.ID()
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}
		if !w.Calculate() {
			return ErrGateRejected
		}
		return s.repo.Insert(ctx, tx, w)
	})
	switch {
	case errors.Is(err, ErrConflict), db.IsUniqueViolation(err):
		s.log.Warn("Create rejected: id already exists", "id", id)
		s.metrics.ObserveRecordOp("create", "conflict")
		return ErrConflict
	case errors.Is(err, ErrGateRejected):
		s.log.Warn("Create rejected by admission gate", "id", id)
		s.metrics.ObserveRecordOp("create", "rejected")
		return ErrGateRejected
	case err != nil:
		return s.storeFailure("create", err, "id", id)
	}
	s.log.Info("Well-bore architecture created", "id", id)
	s.metrics.ObserveRecordOp("create", "ok")
	s.publish(ctx, realtime.ChangeEvent{Kind: realtime.ChangeCreated, ID: id, Count: 1})
	return nil
}

func (s *wellBoreArchitectureService) UpdateByID(ctx context.Context, id uuid.UUID, w *types.WellBoreArchitecture) error {
	if id == uuid.Nil {
		s.metrics.ObserveRecordOp("update", "invalid")
		return ErrInvalidID
	}
	if w == nil || w.MetaInfo == nil {
		s.metrics.ObserveRecordOp("update", "invalid")
		return ErrInvalidPayload
	}
	if w.ID() != id {
		s.log.Warn("Update rejected: id mismatch", "path_id", id, "payload_id", w.ID())
		s.metrics.ObserveRecordOp("update", "invalid")
		return ErrIDMismatch
	}
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		if !w.Calculate() {
			return ErrGateRejected
		}
		stamped := *w
		now := s.now()
		stamped.LastModificationDate = &now
		return s.repo.Update(ctx, tx, &stamped)
	})
	switch {
	case errors.Is(err, ErrNotFound):
		s.metrics.ObserveRecordOp("update", "not_found")
		return ErrNotFound
	case errors.Is(err, ErrGateRejected):
		s.log.Warn("Update rejected by admission gate", "id", id)
		s.metrics.ObserveRecordOp("update", "rejected")
		return ErrGateRejected
	case err != nil:
		return s.storeFailure("update", err, "id", id)
	}
	s.log.Info("Well-bore architecture updated", "id", id)
	s.metrics.ObserveRecordOp("update", "ok")
	s.publish(ctx, realtime.ChangeEvent{Kind: realtime.ChangeUpdated, ID: id, Count: 1})
	return nil
}

func (s *wellBoreArchitectureService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		s.metrics.ObserveRecordOp("delete", "invalid")
		return ErrInvalidID
	}
	var removed int64
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		removed, err = s.repo.DeleteByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return s.storeFailure("delete", err, "id", id)
	}
	if removed == 0 {
		s.metrics.ObserveRecordOp("delete", "not_found")
		return ErrNotFound
	}
	s.log.Info("Well-bore architecture deleted", "id", id)
	s.metrics.ObserveRecordOp("delete", "ok")
	s.publish(ctx, realtime.ChangeEvent{Kind: realtime.ChangeDeleted, ID: id, Count: removed})
	return nil
}

// Clear removes every record and reports how many were removed.
func (s *wellBoreArchitectureService) Clear(ctx context.Context) (int64, error) {
	var removed int64
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		removed, err = s.repo.DeleteAll(ctx, tx)
		return err
	})
	if err != nil {
		return 0, s.storeFailure("clear", err)
	}
	s.log.Info("Well-bore architecture store cleared", "removed", removed)
	s.metrics.ObserveRecordOp("clear", "ok")
	s.publish(ctx, realtime.ChangeEvent{Kind: realtime.ChangeCleared, Count: removed})
	return removed, nil
}

// storeFailure logs err and hides it behind ErrStore.
func (s *wellBoreArchitectureService) storeFailure(op string, err error, kv ...any) error {
	s.log.Error("Store operation failed", append([]any{"op", op, "error", err}, kv...)...)
	s.metrics.ObserveRecordOp(op, "error")
	return fmt.Errorf("%w: %s", ErrStore, op)
}

func (s *wellBoreArchitectureService) publish(ctx context.Context, ev realtime.ChangeEvent) {
	if s.publisher == nil {
		return
	}
	ev.At = s.now()
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Warn("Publishing change event failed", "kind", ev.Kind, "id", ev.ID, "error", err)
	}
}
