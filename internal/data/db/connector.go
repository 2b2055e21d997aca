package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultHomeDirectory = "../home"
	DefaultDatabaseFile  = "WellBoreArchitecture.db"
)

type Config struct {
	Driver        string
	DSN           string // postgres only
	HomeDirectory string // sqlite only
	DatabaseFile  string // sqlite only
	SlowThreshold time.Duration
}

// Connector hands out one fresh connection per operation. Nothing is pooled
// between operations; isolation comes from the database itself.
type Connector struct {
	cfg     Config
	log     *logger.Logger
	gormLog *zapGormLogger
}

// NewConnector validates cfg and, for SQLite, makes sure the home directory
// exists.
func NewConnector(cfg Config, baseLog *logger.Logger) (*Connector, error) {
	log := baseLog.With("component", "Connector")
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = time.Second
	}

	switch cfg.Driver {
	case DriverSQLite:
		if strings.TrimSpace(cfg.HomeDirectory) == "" {
			cfg.HomeDirectory = DefaultHomeDirectory
		}
		if strings.TrimSpace(cfg.DatabaseFile) == "" {
			cfg.DatabaseFile = DefaultDatabaseFile
		}
		if err := os.MkdirAll(cfg.HomeDirectory, 0o755); err != nil {
			return nil, fmt.Errorf("create home directory %s: %w", cfg.HomeDirectory, err)
		}
		path := filepath.Join(cfg.HomeDirectory, cfg.DatabaseFile)
		if _, err := os.Stat(path); err == nil {
			log.Info("Opening database", "path", path)
		} else {
			log.Info("Creating database", "path", path)
		}
	case DriverPostgres:
		if strings.TrimSpace(cfg.DSN) == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		log.Info("Using postgres database", "dsn", cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	return &Connector{
		cfg:     cfg,
		log:     log,
		gormLog: newGormLogger(baseLog, cfg.SlowThreshold),
	}, nil
}

func (c *Connector) Driver() string { return c.cfg.Driver }

// DatabasePath is the SQLite file path, or "" for other drivers.
func (c *Connector) DatabasePath() string {
	if c.cfg.Driver != DriverSQLite {
		return ""
	}
	return filepath.Join(c.cfg.HomeDirectory, c.cfg.DatabaseFile)
}

func (c *Connector) dialector() gorm.Dialector {
	switch c.cfg.Driver {
	case DriverPostgres:
		return postgres.Open(c.cfg.DSN)
	default:
		return sqlite.Open(c.DatabasePath() + "?_busy_timeout=5000")
	}
}

// Open returns a new connection. Callers own it and must Close it.
func (c *Connector) Open(ctx context.Context) (*gorm.DB, error) {
	gdb, err := gorm.Open(c.dialector(), &gorm.Config{
		Logger:         c.gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", c.cfg.Driver, err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s database: %w", c.cfg.Driver, err)
	}
	return gdb.WithContext(ctx), nil
}

func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Do opens a connection, runs fn on it and closes it.
func (c *Connector) Do(ctx context.Context, fn func(gdb *gorm.DB) error) error {
	gdb, err := c.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := Close(gdb); cerr != nil {
			c.log.Warn("Closing connection failed", "error", cerr)
		}
	}()
	return fn(gdb)
}

// Transaction runs fn inside one transaction on a fresh connection. fn
// returning an error rolls back.
func (c *Connector) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return c.Do(ctx, func(gdb *gorm.DB) error {
		return gdb.Transaction(fn)
	})
}
