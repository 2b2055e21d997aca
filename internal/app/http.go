package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/wellbore-architecture/internal/data/db"
	"github.com/yungbote/wellbore-architecture/internal/http"
	httpH "github.com/yungbote/wellbore-architecture/internal/http/handlers"
	"github.com/yungbote/wellbore-architecture/internal/observability"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
)

type Handlers struct {
	Health               *httpH.HealthHandler
	WellBoreArchitecture *httpH.WellBoreArchitectureHandler
}

func wireHandlers(log *logger.Logger, conn *db.Connector, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(func(ctx context.Context) error {
			return conn.Do(ctx, func(*gorm.DB) error { return nil })
		}),
		WellBoreArchitecture: httpH.NewWellBoreArchitectureHandler(httpH.WellBoreArchitectureHandlerDeps{
			Log:     log,
			Service: services.WellBoreArchitecture,
		}),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *http.Server {
	serviceName := ""
	if cfg.Tracing.Enabled {
		serviceName = cfg.Tracing.ServiceName
	}
	return http.NewServer(cfg.HTTP.Addr, http.RouterConfig{
		Log:                         log,
		Metrics:                     metrics,
		BasePath:                    cfg.HTTP.BasePath,
		CORSOrigins:                 cfg.HTTP.CORSOrigins,
		ServiceName:                 serviceName,
		WellBoreArchitectureHandler: handlers.WellBoreArchitecture,
		HealthHandler:               handlers.Health,
	})
}
