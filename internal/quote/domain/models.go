package domain

import (
	"errors"

	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/shopspring/decimal"
)

// Request describes one mission to price. Every figure comes from the
// mission posting form; the rates come from the pricing tables.
type Request struct {
	ActorRank       ruledomain.ActorRank       `json:"actor_rank" binding:"required"`
	Specialization  ruledomain.Specialization  `json:"specialization" binding:"required"`
	ExperienceLevel ruledomain.ExperienceLevel `json:"experience_level" binding:"required"`
	SurfaceUnit     ruledomain.SurfaceUnit     `json:"surface_unit" binding:"required"`

	SurfaceArea        float64 `json:"surface_area"`
	DistanceKm         float64 `json:"distance_km"`
	EstimatedHours     float64 `json:"estimated_hours"`
	EquipmentRequested bool    `json:"equipment_requested"`
	HasAdvantage       bool    `json:"has_advantage"`
}

// Validate rejects combinations the pricing tables cannot cover.
func (r Request) Validate() error {
	if !ruledomain.ValidSpecialization(r.ActorRank, r.Specialization) {
		return ErrInvalidRequest
	}
	switch r.ExperienceLevel {
	case ruledomain.Starter, ruledomain.Qualified, ruledomain.Expert:
	default:
		return ErrInvalidRequest
	}
	switch r.SurfaceUnit {
	case ruledomain.Hectares, ruledomain.SquareMeter, ruledomain.Acres, ruledomain.SquareKilometers:
	default:
		return ErrInvalidRequest
	}
	if r.SurfaceArea < 0 || r.DistanceKm < 0 || r.EstimatedHours < 0 {
		return ErrInvalidRequest
	}
	return nil
}

// LineItem is one priced component of an estimate.
type LineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Estimate is the full line-item breakdown of a mission price.
type Estimate struct {
	Lines     []LineItem      `json:"lines"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Reduction decimal.Decimal `json:"reduction"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
}

var ErrInvalidRequest = errors.New("invalid_quote_request")
