package pricingrule

import (
	"github.com/agrilinklabs/agrilink/internal/pricingrule/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("pricingrule",
	fx.Provide(repository.Provide),
)
