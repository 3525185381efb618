package link

import (
	"github.com/agrilinklabs/agrilink/internal/link/repository"
	"github.com/agrilinklabs/agrilink/internal/link/service"
	"go.uber.org/fx"
)

var Module = fx.Module("link.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
