package service

import (
	"context"
	"testing"

	pricingdomain "github.com/agrilinklabs/agrilink/internal/pricing/domain"
	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/agrilinklabs/agrilink/internal/quote/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRateSource struct {
	rates *pricingdomain.Rates
	err   error
}

func (f *fakeRateSource) RatesFor(ctx context.Context, rank ruledomain.ActorRank, spec ruledomain.Specialization, level ruledomain.ExperienceLevel, unit ruledomain.SurfaceUnit) (*pricingdomain.Rates, error) {
	return f.rates, f.err
}

func newQuoteService(rates *pricingdomain.Rates) domain.Service {
	return New(Params{
		Log:   zap.NewNop(),
		Rates: &fakeRateSource{rates: rates},
	})
}

func baseRequest() domain.Request {
	return domain.Request{
		ActorRank:       ruledomain.Worker,
		Specialization:  ruledomain.NurseryWorker,
		ExperienceLevel: ruledomain.Qualified,
		SurfaceUnit:     ruledomain.Hectares,
		SurfaceArea:     2,
		DistanceKm:      10,
		EstimatedHours:  8,
	}
}

func TestEstimateSumsAllComponents(t *testing.T) {
	svc := newQuoteService(&pricingdomain.Rates{
		BasePrice:         1000,
		Multiplier:        1.5,
		SurfaceUnitPrice:  50,
		PricePerKilometer: 2,
		PricePerHour:      20,
		EquipmentPrice:    100,
	})

	req := baseRequest()
	req.EquipmentRequested = true

	estimate, err := svc.Estimate(context.Background(), req)
	require.NoError(t, err)

	// 1000*1.5 + 50*2 + 2*10 + 20*8 + 100 = 1880
	assert.Equal(t, "1880", estimate.Subtotal.String())
	assert.Equal(t, "1880", estimate.Total.String())
	assert.Equal(t, "0", estimate.Reduction.String())
	assert.Equal(t, "EUR", estimate.Currency)

	require.Len(t, estimate.Lines, 5)
	assert.Equal(t, "base", estimate.Lines[0].Label)
	assert.Equal(t, "1500", estimate.Lines[0].Amount.String())
	assert.Equal(t, "equipment", estimate.Lines[4].Label)
}

func TestEstimateAppliesAdvantageReduction(t *testing.T) {
	svc := newQuoteService(&pricingdomain.Rates{
		BasePrice:                 1000,
		Multiplier:                1,
		AdvantageReductionPercent: 10,
	})

	req := baseRequest()
	req.SurfaceArea = 0
	req.DistanceKm = 0
	req.EstimatedHours = 0
	req.HasAdvantage = true

	estimate, err := svc.Estimate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "1000", estimate.Subtotal.String())
	assert.Equal(t, "100", estimate.Reduction.String())
	assert.Equal(t, "900", estimate.Total.String())
}

func TestEstimateRoundsToCents(t *testing.T) {
	svc := newQuoteService(&pricingdomain.Rates{
		BasePrice:  999.99,
		Multiplier: 1.33,
	})

	req := baseRequest()
	req.SurfaceArea = 0
	req.DistanceKm = 0
	req.EstimatedHours = 0

	estimate, err := svc.Estimate(context.Background(), req)
	require.NoError(t, err)

	// 999.99 * 1.33 = 1329.9867
	assert.Equal(t, "1329.99", estimate.Total.String())
}

func TestEstimateRejectsMismatchedSpecialization(t *testing.T) {
	svc := newQuoteService(&pricingdomain.Rates{BasePrice: 1000, Multiplier: 1})

	req := baseRequest()
	req.Specialization = ruledomain.Agronomy // advisor specialization on a worker

	_, err := svc.Estimate(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestEstimateRejectsNegativeFigures(t *testing.T) {
	svc := newQuoteService(&pricingdomain.Rates{BasePrice: 1000, Multiplier: 1})

	req := baseRequest()
	req.DistanceKm = -1

	_, err := svc.Estimate(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestEstimatePropagatesMissingRates(t *testing.T) {
	svc := New(Params{
		Log:   zap.NewNop(),
		Rates: &fakeRateSource{err: pricingdomain.ErrRateNotFound},
	})

	_, err := svc.Estimate(context.Background(), baseRequest())
	require.ErrorIs(t, err, pricingdomain.ErrRateNotFound)
}
