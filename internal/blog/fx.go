package blog

import (
	"github.com/agrilinklabs/agrilink/internal/blog/repository"
	"github.com/agrilinklabs/agrilink/internal/blog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("blog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
