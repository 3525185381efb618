package domain

import (
	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
)

// Dimension identifies one of the three independently editable derived
// pricing tables.
type Dimension string

var (
	DimensionSpecialization Dimension = "specialization"
	DimensionExperience     Dimension = "experience"
	DimensionSurface        Dimension = "surface"
)

func ParseDimension(raw string) (Dimension, bool) {
	switch Dimension(raw) {
	case DimensionSpecialization, DimensionExperience, DimensionSurface:
		return Dimension(raw), true
	default:
		return "", false
	}
}

// EditState is the per-(dimension, key) edit lifecycle.
type EditState string

var (
	StateClean      EditState = "clean"
	StatePending    EditState = "pending"
	StateCommitting EditState = "committing"
)

// SpecializationKey builds the composite key for the specialization table.
func SpecializationKey(rank ruledomain.ActorRank, spec ruledomain.Specialization) string {
	return string(rank) + "-" + string(spec)
}

// ExperienceKey builds the composite key for the experience table.
func ExperienceKey(rank ruledomain.ActorRank, level ruledomain.ExperienceLevel) string {
	return string(rank) + "-" + string(level)
}

// SurfaceKey builds the key for the surface table.
func SurfaceKey(unit ruledomain.SurfaceUnit) string {
	return string(unit)
}

// RuleKey returns the composite key of a rule for the given dimension.
func RuleKey(rule ruledomain.PricingRule, dim Dimension) string {
	switch dim {
	case DimensionSpecialization:
		return SpecializationKey(rule.ActorRank, rule.Specialization)
	case DimensionExperience:
		return ExperienceKey(rule.ActorRank, rule.ExperienceLevel)
	case DimensionSurface:
		return SurfaceKey(rule.SurfaceUnit)
	default:
		return ""
	}
}

type SpecializationEntry struct {
	Key            string                    `json:"key"`
	ActorRank      ruledomain.ActorRank      `json:"actor_rank"`
	Specialization ruledomain.Specialization `json:"specialization"`
	BasePrice      float64                   `json:"base_price"`
}

type ExperienceEntry struct {
	Key             string                     `json:"key"`
	ActorRank       ruledomain.ActorRank       `json:"actor_rank"`
	ExperienceLevel ruledomain.ExperienceLevel `json:"experience_level"`
	Multiplier      float64                    `json:"multiplier"`
}

type SurfaceEntry struct {
	Key         string                 `json:"key"`
	SurfaceUnit ruledomain.SurfaceUnit `json:"surface_unit"`
	UnitPrice   float64                `json:"unit_price"`
}

// Disagreement flags a composite key whose underlying rows carry different
// values. The view keeps the first-seen value; the discrepancy is surfaced
// for operators instead of being rejected.
type Disagreement struct {
	Dimension Dimension `json:"dimension"`
	Key       string    `json:"key"`
	Kept      float64   `json:"kept"`
	Seen      float64   `json:"seen"`
}

// Views holds the three derived read-models. Entries keep the insertion
// order of the first occurrence in the source rule list.
type Views struct {
	Specialization []SpecializationEntry `json:"specialization"`
	Experience     []ExperienceEntry     `json:"experience"`
	Surface        []SurfaceEntry        `json:"surface"`
	Disagreements  []Disagreement        `json:"disagreements,omitempty"`
}

// SpecializationPrice returns the derived base price for (rank, spec).
func (v Views) SpecializationPrice(rank ruledomain.ActorRank, spec ruledomain.Specialization) (float64, bool) {
	key := SpecializationKey(rank, spec)
	for _, entry := range v.Specialization {
		if entry.Key == key {
			return entry.BasePrice, true
		}
	}
	return 0, false
}

// ExperienceMultiplier returns the derived multiplier for (rank, level).
func (v Views) ExperienceMultiplier(rank ruledomain.ActorRank, level ruledomain.ExperienceLevel) (float64, bool) {
	key := ExperienceKey(rank, level)
	for _, entry := range v.Experience {
		if entry.Key == key {
			return entry.Multiplier, true
		}
	}
	return 0, false
}

// SurfacePrice returns the derived unit price for a surface unit.
func (v Views) SurfacePrice(unit ruledomain.SurfaceUnit) (float64, bool) {
	key := SurfaceKey(unit)
	for _, entry := range v.Surface {
		if entry.Key == key {
			return entry.UnitPrice, true
		}
	}
	return 0, false
}

// DeriveViews projects a flat rule list into the three derived tables.
// Pure and total: same input yields structurally identical output, empty
// input yields empty views. Duplicate composite keys resolve
// first-seen-wins; rows that disagree with the kept value are recorded as
// disagreements and otherwise ignored.
func DeriveViews(rules []ruledomain.PricingRule) Views {
	views := Views{
		Specialization: []SpecializationEntry{},
		Experience:     []ExperienceEntry{},
		Surface:        []SurfaceEntry{},
	}

	specSeen := make(map[string]float64, len(rules))
	expSeen := make(map[string]float64, len(rules))
	surfSeen := make(map[string]float64, len(rules))

	for _, rule := range rules {
		specKey := SpecializationKey(rule.ActorRank, rule.Specialization)
		if kept, ok := specSeen[specKey]; !ok {
			specSeen[specKey] = rule.SpecializationBasePrice
			views.Specialization = append(views.Specialization, SpecializationEntry{
				Key:            specKey,
				ActorRank:      rule.ActorRank,
				Specialization: rule.Specialization,
				BasePrice:      rule.SpecializationBasePrice,
			})
		} else if kept != rule.SpecializationBasePrice {
			views.Disagreements = append(views.Disagreements, Disagreement{
				Dimension: DimensionSpecialization,
				Key:       specKey,
				Kept:      kept,
				Seen:      rule.SpecializationBasePrice,
			})
		}

		expKey := ExperienceKey(rule.ActorRank, rule.ExperienceLevel)
		if kept, ok := expSeen[expKey]; !ok {
			expSeen[expKey] = rule.ExperienceMultiplier
			views.Experience = append(views.Experience, ExperienceEntry{
				Key:             expKey,
				ActorRank:       rule.ActorRank,
				ExperienceLevel: rule.ExperienceLevel,
				Multiplier:      rule.ExperienceMultiplier,
			})
		} else if kept != rule.ExperienceMultiplier {
			views.Disagreements = append(views.Disagreements, Disagreement{
				Dimension: DimensionExperience,
				Key:       expKey,
				Kept:      kept,
				Seen:      rule.ExperienceMultiplier,
			})
		}

		surfKey := SurfaceKey(rule.SurfaceUnit)
		if kept, ok := surfSeen[surfKey]; !ok {
			surfSeen[surfKey] = rule.SurfaceUnitPrice
			views.Surface = append(views.Surface, SurfaceEntry{
				Key:         surfKey,
				SurfaceUnit: rule.SurfaceUnit,
				UnitPrice:   rule.SurfaceUnitPrice,
			})
		} else if kept != rule.SurfaceUnitPrice {
			views.Disagreements = append(views.Disagreements, Disagreement{
				Dimension: DimensionSurface,
				Key:       surfKey,
				Kept:      kept,
				Seen:      rule.SurfaceUnitPrice,
			})
		}
	}

	return views
}
