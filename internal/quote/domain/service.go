package domain

import (
	"context"

	pricingdomain "github.com/agrilinklabs/agrilink/internal/pricing/domain"
	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
)

// RateSource resolves the rate card for one mission profile. The pricing
// aggregator is the production implementation.
type RateSource interface {
	RatesFor(ctx context.Context, rank ruledomain.ActorRank, spec ruledomain.Specialization, level ruledomain.ExperienceLevel, unit ruledomain.SurfaceUnit) (*pricingdomain.Rates, error)
}

// Service prices missions from the current rate card.
type Service interface {
	Estimate(ctx context.Context, req Request) (*Estimate, error)
}
