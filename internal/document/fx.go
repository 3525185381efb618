package document

import (
	"github.com/agrilinklabs/agrilink/internal/document/repository"
	"github.com/agrilinklabs/agrilink/internal/document/service"
	"go.uber.org/fx"
)

var Module = fx.Module("document.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
