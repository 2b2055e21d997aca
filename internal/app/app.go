package app

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/wellbore-architecture/internal/data/db"
	"github.com/yungbote/wellbore-architecture/internal/domain/wellbore"
	"github.com/yungbote/wellbore-architecture/internal/http"
	"github.com/yungbote/wellbore-architecture/internal/observability"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
	"github.com/yungbote/wellbore-architecture/internal/realtime"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Conn     *db.Connector
	Metrics  *observability.Metrics
	Clients  Clients
	Repos    Repos
	Services Services
	Server   *http.Server

	schema       *db.SchemaManager
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel())

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	conn, err := db.NewConnector(cfg.DB(), log)
	if err != nil {
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, fmt.Errorf("init database connector: %w", err)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = otelShutdown(ctx)
		log.Sync()
		return nil, err
	}

	var sink db.BackupSink
	if clients.Backup != nil {
		sink = clients.Backup
	}
	schema := db.NewSchemaManager(conn, log, sink, &wellbore.Record{})

	reposet := wireRepos(log)
	serviceset := wireServices(conn, log, cfg, reposet, clients, metrics)
	handlerset := wireHandlers(log, conn, serviceset)
	server := wireServer(log, cfg, handlerset, metrics)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Conn:         conn,
		Metrics:      metrics,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		Server:       server,
		schema:       schema,
		otelShutdown: otelShutdown,
	}, nil
}

// EnsureSchema verifies the database layout and rebuilds it on mismatch.
func (a *App) EnsureSchema(ctx context.Context) (*db.SchemaReport, error) {
	if a == nil || a.schema == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a.schema.Ensure(ctx)
}

// Run serves HTTP and, when enabled, runs the retention sweeper until ctx is
// cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	if _, err := a.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Server.Addr(), "base_path", a.Cfg.HTTP.BasePath)
		return a.Server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), a.Cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.Log.Info("Shutting down HTTP server...")
		return a.Server.Shutdown(shutdownCtx)
	})
	if a.Cfg.Retention.Enabled && a.Services.Sweeper != nil {
		g.Go(func() error { return a.Services.Sweeper.Run(gctx) })
	}
	return g.Wait()
}

// SweepOnce runs a single retention sweep.
func (a *App) SweepOnce(ctx context.Context) (int64, error) {
	if a == nil || a.Services.Sweeper == nil {
		return 0, fmt.Errorf("app not initialized")
	}
	if _, err := a.EnsureSchema(ctx); err != nil {
		return 0, fmt.Errorf("ensure schema: %w", err)
	}
	return a.Services.Sweeper.SweepOnce(ctx)
}

// Watch calls onEvent for every change event until ctx is cancelled.
func (a *App) Watch(ctx context.Context, onEvent func(ev realtime.ChangeEvent)) error {
	if a == nil || a.Clients.Bus == nil {
		return fmt.Errorf("app not initialized")
	}
	if err := a.Clients.Bus.StartForwarder(ctx, onEvent); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		a.otelShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
