package service

import (
	"context"

	obsmetrics "github.com/agrilinklabs/agrilink/internal/observability/metrics"
	"github.com/agrilinklabs/agrilink/internal/quote/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Rates   domain.RateSource
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	rates   domain.RateSource
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("quote.service"),
		rates:   p.Rates,
		metrics: p.Metrics,
	}
}

const currency = "EUR"

var oneHundred = decimal.NewFromInt(100)

// Estimate prices a mission by summing the rate-card components:
// specialization base price scaled by the experience multiplier, then
// surface, travel, labor and equipment, minus the advantage reduction.
func (s *Service) Estimate(ctx context.Context, req domain.Request) (*domain.Estimate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rates, err := s.rates.RatesFor(ctx, req.ActorRank, req.Specialization, req.ExperienceLevel, req.SurfaceUnit)
	if err != nil {
		return nil, err
	}

	base := decimal.NewFromFloat(rates.BasePrice).
		Mul(decimal.NewFromFloat(rates.Multiplier))
	surface := decimal.NewFromFloat(rates.SurfaceUnitPrice).
		Mul(decimal.NewFromFloat(req.SurfaceArea))
	travel := decimal.NewFromFloat(rates.PricePerKilometer).
		Mul(decimal.NewFromFloat(req.DistanceKm))
	labor := decimal.NewFromFloat(rates.PricePerHour).
		Mul(decimal.NewFromFloat(req.EstimatedHours))

	lines := []domain.LineItem{
		{Label: "base", Amount: base.Round(2)},
		{Label: "surface", Amount: surface.Round(2)},
		{Label: "travel", Amount: travel.Round(2)},
		{Label: "labor", Amount: labor.Round(2)},
	}

	subtotal := base.Add(surface).Add(travel).Add(labor)
	if req.EquipmentRequested {
		equipment := decimal.NewFromFloat(rates.EquipmentPrice)
		lines = append(lines, domain.LineItem{Label: "equipment", Amount: equipment.Round(2)})
		subtotal = subtotal.Add(equipment)
	}

	reduction := decimal.Zero
	if req.HasAdvantage && rates.AdvantageReductionPercent > 0 {
		reduction = subtotal.
			Mul(decimal.NewFromFloat(rates.AdvantageReductionPercent)).
			Div(oneHundred)
	}

	estimate := &domain.Estimate{
		Lines:     lines,
		Subtotal:  subtotal.Round(2),
		Reduction: reduction.Round(2),
		Total:     subtotal.Sub(reduction).Round(2),
		Currency:  currency,
	}

	if s.metrics != nil {
		s.metrics.RecordQuoteRequest(ctx, string(req.ActorRank))
	}
	s.log.Debug("quote computed",
		zap.String("actor_rank", string(req.ActorRank)),
		zap.String("specialization", string(req.Specialization)),
		zap.String("total", estimate.Total.String()),
	)
	return estimate, nil
}
