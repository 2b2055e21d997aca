package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/wellbore-architecture/internal/data/db"
	types "github.com/yungbote/wellbore-architecture/internal/domain/wellbore"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// Connector returns a connector on a fresh SQLite database under tb's temp
// dir, with the schema already in place.
func Connector(tb testing.TB) *db.Connector {
	tb.Helper()
	conn, err := db.NewConnector(db.Config{
		Driver:        db.DriverSQLite,
		HomeDirectory: filepath.Join(tb.TempDir(), "home"),
	}, Logger(tb))
	if err != nil {
		tb.Fatalf("new connector: %v", err)
	}
	if _, err := db.NewSchemaManager(conn, Logger(tb), nil, &types.Record{}).Ensure(context.Background()); err != nil {
		tb.Fatalf("ensure schema: %v", err)
	}
	return conn
}

// DB opens one connection on a fresh database and closes it when tb ends.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	gdb, err := Connector(tb).Open(context.Background())
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func Tx(tb testing.TB, gdb *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := gdb.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

// Architecture builds a record that passes the admission gate.
func Architecture(id uuid.UUID, name string) *types.WellBoreArchitecture {
	w := types.NewWellBoreArchitecture(id)
	w.Name = &name
	created := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	w.CreationDate = &created
	w.LastModificationDate = &created
	w.WellHead = &types.WellHead{MaxOD: types.Scalar(0.762), Depth: types.Gaussian(-1.2)}
	w.SurfaceSections = []types.SurfaceSection{{
		Type:                    types.SurfaceSectionBOP,
		SectionLength:           types.GaussianWithStdDev(12.5, 0.1),
		MakeUpTorqueRecommended: types.Scalar(45000),
	}}
	w.CasingSections = []types.CasingSection{{
		TopDepth: types.Gaussian(0),
		Length:   types.Gaussian(800),
		CasingSectionElements: []types.CasingSectionElement{
			{BodyOD: types.Gaussian(0.508), MaxDLS: types.Scalar(3)},
		},
		OpenHoleSection: &types.OpenHoleSection{HoleSizes: []types.BoreHoleSize{
			{HoleSize: types.Gaussian(0.4445), Length: types.Gaussian(1200)},
		}},
	}}
	return w
}

func Seed(tb testing.TB, ctx context.Context, tx *gorm.DB, rec *types.Record) {
	tb.Helper()
	if err := tx.WithContext(ctx).Create(rec).Error; err != nil {
		tb.Fatalf("seed record %s: %v", rec.ID, err)
	}
}
