package mission

import (
	"github.com/agrilinklabs/agrilink/internal/mission/repository"
	"github.com/agrilinklabs/agrilink/internal/mission/service"
	"go.uber.org/fx"
)

var Module = fx.Module("mission.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
