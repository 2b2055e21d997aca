package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
)

var ErrSchemaMismatch = errors.New("database schema mismatch")

// BackupSink receives a copy of a database file before its tables are
// dropped. Implementations may ship it off-host.
type BackupSink interface {
	Store(ctx context.Context, localPath string) error
}

type SchemaReport struct {
	Consistent bool
	Existing   []string
	Dropped    []string
	Created    []string
	BackupPath string
}

// SchemaManager checks the live schema against the models at startup and
// rebuilds it when they disagree.
type SchemaManager struct {
	conn   *Connector
	models []any
	sink   BackupSink
	log    *logger.Logger
	now    func() time.Time
}

func NewSchemaManager(conn *Connector, baseLog *logger.Logger, sink BackupSink, models ...any) *SchemaManager {
	return &SchemaManager{
		conn:   conn,
		models: models,
		sink:   sink,
		log:    baseLog.With("component", "SchemaManager"),
		now:    time.Now,
	}
}

// Ensure verifies that the database holds exactly the expected tables, each
// with exactly the expected columns. On mismatch the existing file is backed
// up, every table is dropped, and the expected tables are created. An empty
// database is simply initialized.
func (m *SchemaManager) Ensure(ctx context.Context) (*SchemaReport, error) {
	report := &SchemaReport{}

	var expected map[string][]string
	err := m.conn.Do(ctx, func(gdb *gorm.DB) error {
		var err error
		expected, err = expectedTables(gdb, m.models)
		if err != nil {
			return err
		}
		report.Existing, err = userTables(gdb)
		if err != nil {
			return err
		}
		report.Consistent, err = matches(gdb, expected, report.Existing)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	if report.Consistent {
		m.log.Debug("Database schema is consistent", "tables", report.Existing)
		return report, nil
	}

	if len(report.Existing) > 0 {
		m.log.Warn("Unexpected structure of the existing database, a timestamped backup copy will be generated", "tables", report.Existing)
		path := m.conn.DatabasePath()
		if path == "" {
			return report, fmt.Errorf("%w: refusing to drop %s tables without a file backup", ErrSchemaMismatch, m.conn.Driver())
		}
		backupPath, err := BackupFile(path, m.now())
		if err != nil {
			m.log.Error("Backup of the existing database failed", "error", err, "path", path)
		} else {
			report.BackupPath = backupPath
			m.log.Info("Database backed up", "backup", backupPath)
			if m.sink != nil {
				if err := m.sink.Store(ctx, backupPath); err != nil {
					m.log.Warn("Shipping database backup failed", "error", err, "backup", backupPath)
				}
			}
		}
	}

	err = m.conn.Do(ctx, func(gdb *gorm.DB) error {
		migrator := gdb.Migrator()
		for _, table := range report.Existing {
			m.log.Warn("Dropping table", "table", table)
			if err := gdb.Exec("DROP TABLE IF EXISTS ?", clause.Table{Name: table}).Error; err != nil {
				return fmt.Errorf("drop table %s (database may be corrupted, consider deleting it): %w", table, err)
			}
			report.Dropped = append(report.Dropped, table)
		}
		for _, model := range m.models {
			table := tableOf(gdb, model)
			m.log.Info("Creating table", "table", table)
			if err := migrator.CreateTable(model); err != nil {
				if dropErr := migrator.DropTable(model); dropErr != nil {
					m.log.Error("Dropping half-created table failed", "table", table, "error", dropErr)
				}
				return fmt.Errorf("create table %s: %w", table, err)
			}
			report.Created = append(report.Created, table)
		}
		return nil
	})
	if err != nil {
		return report, err
	}
	return report, nil
}

func expectedTables(gdb *gorm.DB, models []any) (map[string][]string, error) {
	out := make(map[string][]string, len(models))
	for _, model := range models {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		out[stmt.Schema.Table] = append([]string(nil), stmt.Schema.DBNames...)
	}
	return out, nil
}

func tableOf(gdb *gorm.DB, model any) string {
	stmt := &gorm.Statement{DB: gdb}
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}
	return stmt.Schema.Table
}

func userTables(gdb *gorm.DB) ([]string, error) {
	tables, err := gdb.Migrator().GetTables()
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		if strings.HasPrefix(t, "sqlite_") {
			continue
		}
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

func matches(gdb *gorm.DB, expected map[string][]string, existing []string) (bool, error) {
	if len(existing) != len(expected) {
		return false, nil
	}
	for _, table := range existing {
		want, ok := expected[table]
		if !ok {
			return false, nil
		}
		cols, err := gdb.Migrator().ColumnTypes(table)
		if err != nil {
			return false, fmt.Errorf("list columns of %s: %w", table, err)
		}
		got := make([]string, 0, len(cols))
		for _, c := range cols {
			got = append(got, c.Name())
		}
		if !sameSet(want, got) {
			return false, nil
		}
	}
	return true, nil
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, s := range a {
		seen[s]++
	}
	for _, s := range b {
		if seen[s] == 0 {
			return false
		}
		seen[s]--
	}
	return true
}
