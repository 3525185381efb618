package notification

import (
	"github.com/agrilinklabs/agrilink/internal/notification/repository"
	"github.com/agrilinklabs/agrilink/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
