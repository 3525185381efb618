package actor

import (
	"github.com/agrilinklabs/agrilink/internal/actor/repository"
	"github.com/agrilinklabs/agrilink/internal/actor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("actor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
