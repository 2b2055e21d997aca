package repos

import (
	"github.com/yungbote/wellbore-architecture/internal/data/repos/wellbore"
)

type WellBoreArchitectureRepo = wellbore.WellBoreArchitectureRepo

var NewWellBoreArchitectureRepo = wellbore.NewWellBoreArchitectureRepo
