package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/wellbore-architecture/internal/data/db"
	"github.com/yungbote/wellbore-architecture/internal/jobs/retention"
	"github.com/yungbote/wellbore-architecture/internal/observability"
	"github.com/yungbote/wellbore-architecture/internal/platform/envutil"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
	"github.com/yungbote/wellbore-architecture/internal/realtime/bus"
)

const DefaultConfigPath = "config/config.yaml"

type Config struct {
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`

	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Retention RetentionConfig `yaml:"retention"`
	Redis     RedisConfig     `yaml:"redis"`
	Backup    BackupConfig    `yaml:"backup"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	BasePath        string        `yaml:"base_path"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Driver        string        `yaml:"driver"`
	DSN           string        `yaml:"dsn"`
	HomeDirectory string        `yaml:"home_directory"`
	File          string        `yaml:"file"`
	SlowQuery     time.Duration `yaml:"slow_query"`
}

type RetentionConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Window   time.Duration `yaml:"window"`
	LeaseTTL time.Duration `yaml:"lease_ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
	LeaseKey string `yaml:"lease_key"`
}

type BackupConfig struct {
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix"`
	EmulatorHost string `yaml:"emulator_host"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

func DefaultConfig() Config {
	return Config{
		Environment: "development",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			BasePath:        "/WellBoreArchitecture/api",
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:        db.DriverSQLite,
			HomeDirectory: db.DefaultHomeDirectory,
			File:          db.DefaultDatabaseFile,
			SlowQuery:     time.Second,
		},
		Retention: RetentionConfig{
			Enabled:  true,
			Interval: retention.DefaultInterval,
			Window:   retention.DefaultWindow,
			LeaseTTL: 10 * time.Minute,
		},
		Redis: RedisConfig{
			Channel:  bus.DefaultChannel,
			LeaseKey: retention.DefaultLeaseKey,
		},
		Backup: BackupConfig{
			Prefix: "wellbore-architecture/backups",
		},
		Metrics: MetricsConfig{Enabled: true},
		Tracing: TracingConfig{
			ServiceName: "wellbore-architecture",
			SampleRatio: 1,
		},
	}
}

// LoadConfig layers the defaults, the YAML file named by WBA_CONFIG_PATH (or
// config/config.yaml when present), and environment variables, in that
// order.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := DefaultConfig()

	path := envutil.String("WBA_CONFIG_PATH", "")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}
	if err := loadFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			log.Debug("No config file, using defaults and environment", "path", path)
		} else {
			return Config{}, err
		}
	} else {
		log.Info("Loaded config file", "path", path)
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Environment = envutil.String("APP_ENV", cfg.Environment)
	cfg.Version = envutil.String("APP_VERSION", cfg.Version)

	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	if port := envutil.String("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + port
	}
	cfg.HTTP.BasePath = envutil.String("WBA_BASE_PATH", cfg.HTTP.BasePath)
	cfg.HTTP.ShutdownTimeout = envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout)
	if origins := envutil.String("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.HTTP.CORSOrigins = splitList(origins)
	}

	cfg.Database.Driver = envutil.String("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = envutil.String("DB_DSN", cfg.Database.DSN)
	cfg.Database.HomeDirectory = envutil.String("WBA_HOME_DIRECTORY", cfg.Database.HomeDirectory)
	cfg.Database.File = envutil.String("DB_FILE", cfg.Database.File)
	cfg.Database.SlowQuery = envutil.Duration("DB_SLOW_QUERY", cfg.Database.SlowQuery)

	cfg.Retention.Enabled = envutil.Bool("RETENTION_ENABLED", cfg.Retention.Enabled)
	cfg.Retention.Interval = envutil.Duration("RETENTION_INTERVAL", cfg.Retention.Interval)
	cfg.Retention.Window = envutil.Duration("RETENTION_WINDOW", cfg.Retention.Window)
	cfg.Retention.LeaseTTL = envutil.Duration("RETENTION_LEASE_TTL", cfg.Retention.LeaseTTL)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envutil.Int("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.Channel = envutil.String("REDIS_CHANNEL", cfg.Redis.Channel)

	cfg.Backup.Bucket = envutil.String("BACKUP_GCS_BUCKET", cfg.Backup.Bucket)
	cfg.Backup.Prefix = envutil.String("BACKUP_GCS_PREFIX", cfg.Backup.Prefix)
	cfg.Backup.EmulatorHost = envutil.String("STORAGE_EMULATOR_HOST", cfg.Backup.EmulatorHost)

	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled)

	cfg.Tracing.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Tracing.ServiceName)
	cfg.Tracing.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Tracing.Headers)
	cfg.Tracing.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Tracing.Insecure)
	cfg.Tracing.SampleRatio = envutil.Float("OTEL_TRACES_SAMPLER_ARG", cfg.Tracing.SampleRatio)
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case db.DriverSQLite:
	case db.DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Retention.Enabled && (c.Retention.Interval <= 0 || c.Retention.Window <= 0) {
		return fmt.Errorf("retention interval and window must be positive")
	}
	return nil
}

func (c Config) DB() db.Config {
	return db.Config{
		Driver:        c.Database.Driver,
		DSN:           c.Database.DSN,
		HomeDirectory: c.Database.HomeDirectory,
		DatabaseFile:  c.Database.File,
		SlowThreshold: c.Database.SlowQuery,
	}
}

func (c Config) Otel() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Tracing.Enabled,
		ServiceName: c.Tracing.ServiceName,
		Environment: c.Environment,
		Version:     c.Version,
		Endpoint:    c.Tracing.Endpoint,
		Headers:     observability.ParseHeaders(c.Tracing.Headers),
		Insecure:    c.Tracing.Insecure,
		SampleRatio: c.Tracing.SampleRatio,
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
