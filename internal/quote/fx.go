package quote

import (
	pricingdomain "github.com/agrilinklabs/agrilink/internal/pricing/domain"
	"github.com/agrilinklabs/agrilink/internal/quote/domain"
	"github.com/agrilinklabs/agrilink/internal/quote/service"
	"go.uber.org/fx"
)

var Module = fx.Module("quote.service",
	fx.Provide(func(p pricingdomain.Service) domain.RateSource { return p }),
	fx.Provide(service.New),
)
