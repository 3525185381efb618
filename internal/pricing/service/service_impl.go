package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/agrilinklabs/agrilink/internal/config"
	pricingdomain "github.com/agrilinklabs/agrilink/internal/pricing/domain"
	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Repo   ruledomain.Repository
	Bounds *config.PricingBoundsHolder
}

type editKey struct {
	dimension pricingdomain.Dimension
	key       string
}

// Service owns the flat rule cache, the derived views and all transient
// edit state. The cache is an eventually-consistent read replica of the
// store: it is replaced on Refresh and patched in place after a fully
// successful commit, never mutated elsewhere.
type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	repo   ruledomain.Repository
	bounds *config.PricingBoundsHolder

	mu       sync.Mutex
	loaded   bool
	rules    []ruledomain.PricingRule
	views    pricingdomain.Views
	pending  map[editKey]float64
	inflight map[editKey]struct{}
}

func New(p Params) pricingdomain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("pricing.service"),
		repo:     p.Repo,
		bounds:   p.Bounds,
		pending:  make(map[editKey]float64),
		inflight: make(map[editKey]struct{}),
	}
}

func (s *Service) Refresh(ctx context.Context) error {
	rules, err := s.repo.List(ctx, s.db)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceRulesLocked(rules)
	return nil
}

func (s *Service) Snapshot(ctx context.Context) (*pricingdomain.Snapshot, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := &pricingdomain.Snapshot{
		Views:   s.views,
		Pending: make([]pricingdomain.PendingEdit, 0, len(s.pending)),
	}
	for k, value := range s.pending {
		state := pricingdomain.StatePending
		if _, busy := s.inflight[k]; busy {
			state = pricingdomain.StateCommitting
		}
		snapshot.Pending = append(snapshot.Pending, pricingdomain.PendingEdit{
			Dimension: k.dimension,
			Key:       k.key,
			Value:     value,
			State:     state,
		})
	}
	return snapshot, nil
}

func (s *Service) RecordPendingEdit(dimension pricingdomain.Dimension, key, rawValue string) {
	value, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
	if err != nil {
		s.log.Debug("pending edit dropped: not a number",
			zap.String("dimension", string(dimension)),
			zap.String("key", key),
			zap.String("raw", rawValue),
		)
		return
	}
	if !s.inRange(dimension, value) {
		s.log.Debug("pending edit dropped: out of range",
			zap.String("dimension", string(dimension)),
			zap.String("key", key),
			zap.Float64("value", value),
		)
		return
	}

	k := editKey{dimension: dimension, key: key}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[k]; busy {
		// The cell is mid-commit; a keystroke now would race the merge.
		return
	}
	s.pending[k] = value
}

func (s *Service) CommitEdit(ctx context.Context, dimension pricingdomain.Dimension, key string) error {
	field, ok := fieldForDimension(dimension)
	if !ok {
		return pricingdomain.ErrUnknownDimension
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	k := editKey{dimension: dimension, key: key}

	s.mu.Lock()
	value, hasPending := s.pending[k]
	if !hasPending {
		s.mu.Unlock()
		return nil
	}
	if _, busy := s.inflight[k]; busy {
		s.mu.Unlock()
		return pricingdomain.ErrCommitInFlight
	}
	s.inflight[k] = struct{}{}

	ids := make([]snowflake.ID, 0)
	for _, rule := range s.rules {
		if pricingdomain.RuleKey(rule, dimension) == key {
			ids = append(ids, rule.ID)
		}
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, k)
		s.mu.Unlock()
	}()

	updated := make([]*ruledomain.PricingRule, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			row, err := s.repo.UpdateFields(gctx, s.db, id, map[string]any{field: value})
			if err != nil {
				return err
			}
			updated[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Some rows may have been written server-side; the local cache
		// stays untouched and the pending edit survives for retry.
		s.log.Warn("pricing commit failed",
			zap.String("dimension", string(dimension)),
			zap.String("key", key),
			zap.Int("affected_rows", len(ids)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", pricingdomain.ErrCommitFailed, err)
	}

	s.mu.Lock()
	byID := make(map[snowflake.ID]*ruledomain.PricingRule, len(updated))
	for _, row := range updated {
		if row != nil {
			byID[row.ID] = row
		}
	}
	for i := range s.rules {
		if row, ok := byID[s.rules[i].ID]; ok {
			s.rules[i] = *row
		}
	}
	// RecordPendingEdit refuses keystrokes for an in-flight key, so the
	// pending value is still the one just written.
	delete(s.pending, k)
	s.views = pricingdomain.DeriveViews(s.rules)
	s.mu.Unlock()

	s.log.Info("pricing commit applied",
		zap.String("dimension", string(dimension)),
		zap.String("key", key),
		zap.Float64("value", value),
		zap.Int("affected_rows", len(ids)),
	)
	return nil
}

func (s *Service) CancelEdit(dimension pricingdomain.Dimension, key string) {
	k := editKey{dimension: dimension, key: key}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[k]; busy {
		// An issued commit cannot be recalled; it resolves either way.
		return
	}
	delete(s.pending, k)
}

func (s *Service) RatesFor(ctx context.Context, rank ruledomain.ActorRank, spec ruledomain.Specialization, level ruledomain.ExperienceLevel, unit ruledomain.SurfaceUnit) (*pricingdomain.Rates, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	basePrice, ok := s.views.SpecializationPrice(rank, spec)
	if !ok {
		return nil, pricingdomain.ErrRateNotFound
	}
	multiplier, ok := s.views.ExperienceMultiplier(rank, level)
	if !ok {
		return nil, pricingdomain.ErrRateNotFound
	}
	surfacePrice, ok := s.views.SurfacePrice(unit)
	if !ok {
		return nil, pricingdomain.ErrRateNotFound
	}

	// Auxiliary per-row rates follow the same first-seen-wins rule as the
	// derived views.
	for _, rule := range s.rules {
		if rule.ActorRank != rank || rule.Specialization != spec {
			continue
		}
		return &pricingdomain.Rates{
			BasePrice:                 basePrice,
			Multiplier:                multiplier,
			SurfaceUnitPrice:          surfacePrice,
			PricePerKilometer:         rule.PricePerKilometer,
			PricePerHour:              rule.PricePerHour,
			EquipmentPrice:            rule.EquipmentPrice,
			AdvantageReductionPercent: rule.AdvantageReductionPercent,
		}, nil
	}
	return nil, pricingdomain.ErrRateNotFound
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	return s.Refresh(ctx)
}

func (s *Service) replaceRulesLocked(rules []ruledomain.PricingRule) {
	s.rules = rules
	s.views = pricingdomain.DeriveViews(rules)
	s.loaded = true

	for _, d := range s.views.Disagreements {
		s.log.Warn("pricing rows disagree on shared key",
			zap.String("dimension", string(d.Dimension)),
			zap.String("key", d.Key),
			zap.Float64("kept", d.Kept),
			zap.Float64("seen", d.Seen),
		)
	}
}

func (s *Service) inRange(dimension pricingdomain.Dimension, value float64) bool {
	bounds := config.DefaultPricingBounds()
	if s.bounds != nil {
		bounds = s.bounds.Get()
	}

	switch dimension {
	case pricingdomain.DimensionSpecialization:
		return value >= bounds.BasePriceMin
	case pricingdomain.DimensionExperience:
		return value >= bounds.MultiplierMin && value <= bounds.MultiplierMax
	case pricingdomain.DimensionSurface:
		return value >= bounds.SurfacePriceMin
	default:
		return false
	}
}

func fieldForDimension(dimension pricingdomain.Dimension) (string, bool) {
	switch dimension {
	case pricingdomain.DimensionSpecialization:
		return ruledomain.FieldSpecializationBasePrice, true
	case pricingdomain.DimensionExperience:
		return ruledomain.FieldExperienceMultiplier, true
	case pricingdomain.DimensionSurface:
		return ruledomain.FieldSurfaceUnitPrice, true
	default:
		return "", false
	}
}
