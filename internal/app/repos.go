package app

import (
	"github.com/yungbote/wellbore-architecture/internal/data/repos"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
)

type Repos struct {
	WellBoreArchitecture repos.WellBoreArchitectureRepo
}

func wireRepos(log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		WellBoreArchitecture: repos.NewWellBoreArchitectureRepo(log),
	}
}
