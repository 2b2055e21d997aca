package app

import (
	"github.com/yungbote/wellbore-architecture/internal/data/db"
	"github.com/yungbote/wellbore-architecture/internal/jobs/retention"
	"github.com/yungbote/wellbore-architecture/internal/observability"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
	"github.com/yungbote/wellbore-architecture/internal/services"
)

type Services struct {
	WellBoreArchitecture services.WellBoreArchitectureService
	Sweeper              *retention.Sweeper
}

func wireServices(conn *db.Connector, log *logger.Logger, cfg Config, reposet Repos, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	return Services{
		WellBoreArchitecture: services.NewWellBoreArchitectureService(
			conn,
			log,
			reposet.WellBoreArchitecture,
			clients.Bus,
			metrics,
		),
		Sweeper: retention.NewSweeper(
			retention.Config{
				Interval: cfg.Retention.Interval,
				Window:   cfg.Retention.Window,
				LeaseTTL: cfg.Retention.LeaseTTL,
			},
			conn,
			log,
			reposet.WellBoreArchitecture,
			clients.Lease,
			clients.Bus,
			metrics,
		),
	}
}
