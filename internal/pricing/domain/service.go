package domain

import (
	"context"
	"errors"

	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
)

// PendingEdit is a not-yet-saved admin edit of one derived cell.
type PendingEdit struct {
	Dimension Dimension `json:"dimension"`
	Key       string    `json:"key"`
	Value     float64   `json:"value"`
	State     EditState `json:"state"`
}

// Snapshot is the admin-facing projection: derived tables plus any in-flight
// edit state. Pending values stay distinguishable from committed ones so the
// console can render retry/cancel affordances after a failed commit.
type Snapshot struct {
	Views   Views         `json:"views"`
	Pending []PendingEdit `json:"pending"`
}

// Rates bundles every figure needed to price one mission: the three derived
// view values plus the auxiliary per-rule rates, resolved first-seen-wins
// like the views themselves.
type Rates struct {
	BasePrice                 float64 `json:"base_price"`
	Multiplier                float64 `json:"multiplier"`
	SurfaceUnitPrice          float64 `json:"surface_unit_price"`
	PricePerKilometer         float64 `json:"price_per_kilometer"`
	PricePerHour              float64 `json:"price_per_hour"`
	EquipmentPrice            float64 `json:"equipment_price"`
	AdvantageReductionPercent float64 `json:"advantage_reduction_percent"`
}

// Service maintains the derived pricing tables and reconciles edits back
// across every underlying rule row sharing the edited key.
type Service interface {
	// Refresh re-reads the full rule set from the store and rebuilds views.
	Refresh(ctx context.Context) error

	// Snapshot returns the current derived tables and pending edits,
	// loading the rule set on first use.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// RecordPendingEdit validates rawValue against the dimension's bounds
	// and stores it as the pending value for key. Invalid values are
	// dropped without error, mirroring ignore-bad-keystrokes editing.
	RecordPendingEdit(dimension Dimension, key, rawValue string)

	// CommitEdit fans the pending value for (dimension, key) out to every
	// rule row sharing that key. No pending edit makes it a no-op. On
	// failure the local cache is untouched and the pending edit survives
	// for retry.
	CommitEdit(ctx context.Context, dimension Dimension, key string) error

	// CancelEdit drops the pending value without contacting the store.
	CancelEdit(dimension Dimension, key string)

	// RatesFor resolves the full rate card for one
	// (rank, specialization, experience, surface unit) combination.
	RatesFor(ctx context.Context, rank ruledomain.ActorRank, spec ruledomain.Specialization, level ruledomain.ExperienceLevel, unit ruledomain.SurfaceUnit) (*Rates, error)
}

var (
	// ErrCommitFailed wraps store failures during fan-out.
	ErrCommitFailed = errors.New("commit_failed")
	// ErrCommitInFlight rejects a second commit for a key whose first
	// commit has not resolved yet.
	ErrCommitInFlight = errors.New("commit_in_flight")
	// ErrUnknownDimension rejects requests for a dimension outside the
	// three derived tables.
	ErrUnknownDimension = errors.New("unknown_dimension")
	// ErrRateNotFound means no rule row covers the requested combination.
	ErrRateNotFound = errors.New("rate_not_found")
)
