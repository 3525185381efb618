package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type ActorRank string

var (
	Worker       ActorRank = "worker"
	Advisor      ActorRank = "advisor"
	Entrepreneur ActorRank = "entrepreneur"
)

type Specialization string

var (
	// Worker specializations.
	NurseryWorker     Specialization = "nursery_worker"
	HarvestHand       Specialization = "harvest_hand"
	MachineryOperator Specialization = "machinery_operator"
	LivestockKeeper   Specialization = "livestock_keeper"

	// Advisor specializations.
	Agronomy       Specialization = "agronomy"
	Irrigation     Specialization = "irrigation"
	SoilHealth     Specialization = "soil_health"
	CropProtection Specialization = "crop_protection"

	// Entrepreneur specializations.
	MarketGardening Specialization = "market_gardening"
	Viticulture     Specialization = "viticulture"
	CerealFarming   Specialization = "cereal_farming"
	Agroforestry    Specialization = "agroforestry"
)

type ExperienceLevel string

var (
	Starter   ExperienceLevel = "starter"
	Qualified ExperienceLevel = "qualified"
	Expert    ExperienceLevel = "expert"
)

type SurfaceUnit string

var (
	Hectares         SurfaceUnit = "hectares"
	SquareMeter      SurfaceUnit = "square_meter"
	Acres            SurfaceUnit = "acres"
	SquareKilometers SurfaceUnit = "square_kilometers"
)

// SpecializationsFor returns the specializations valid for a rank, in
// display order.
func SpecializationsFor(rank ActorRank) []Specialization {
	switch rank {
	case Worker:
		return []Specialization{NurseryWorker, HarvestHand, MachineryOperator, LivestockKeeper}
	case Advisor:
		return []Specialization{Agronomy, Irrigation, SoilHealth, CropProtection}
	case Entrepreneur:
		return []Specialization{MarketGardening, Viticulture, CerealFarming, Agroforestry}
	default:
		return nil
	}
}

// ValidSpecialization reports whether spec belongs to rank.
func ValidSpecialization(rank ActorRank, spec Specialization) bool {
	for _, s := range SpecializationsFor(rank) {
		if s == spec {
			return true
		}
	}
	return false
}

// PricingRule is one flat, denormalized pricing row. Several rows may share
// the same (rank, specialization), (rank, experience) or surface-unit key;
// the aggregated admin view treats each shared key as a single logical entry.
type PricingRule struct {
	ID snowflake.ID `json:"id" gorm:"primaryKey"`

	ActorRank       ActorRank       `json:"actor_rank" gorm:"type:text;not null;index"`
	Specialization  Specialization  `json:"specialization" gorm:"type:text;not null;index"`
	ExperienceLevel ExperienceLevel `json:"experience_level" gorm:"type:text;not null"`
	SurfaceUnit     SurfaceUnit     `json:"surface_unit" gorm:"type:text;not null"`

	SpecializationBasePrice   float64 `json:"specialization_base_price" gorm:"type:numeric;not null"`
	ExperienceMultiplier      float64 `json:"experience_multiplier" gorm:"type:numeric;not null;default:1"`
	SurfaceUnitPrice          float64 `json:"surface_unit_price" gorm:"type:numeric;not null"`
	PricePerKilometer         float64 `json:"price_per_kilometer" gorm:"type:numeric;not null"`
	PricePerHour              float64 `json:"price_per_hour" gorm:"type:numeric;not null"`
	EquipmentPrice            float64 `json:"equipment_price" gorm:"type:numeric;not null"`
	AdvantageReductionPercent float64 `json:"advantage_reduction_percent" gorm:"type:numeric;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PricingRule) TableName() string { return "pricing_rules" }

// Field names accepted by Repository.UpdateFields.
const (
	FieldSpecializationBasePrice = "specialization_base_price"
	FieldExperienceMultiplier    = "experience_multiplier"
	FieldSurfaceUnitPrice        = "surface_unit_price"
)
