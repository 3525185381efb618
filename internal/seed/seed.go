package seed

import (
	"context"
	"errors"
	"time"

	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Default rate card. Base prices are per rank and specialization; the
// remaining figures are shared starting points an admin tunes later.
var defaultBasePrices = map[ruledomain.ActorRank]float64{
	ruledomain.Worker:       900,
	ruledomain.Advisor:      1400,
	ruledomain.Entrepreneur: 1800,
}

var defaultMultipliers = map[ruledomain.ExperienceLevel]float64{
	ruledomain.Starter:   1.0,
	ruledomain.Qualified: 1.25,
	ruledomain.Expert:    1.6,
}

var defaultSurfacePrices = map[ruledomain.SurfaceUnit]float64{
	ruledomain.Hectares:         55,
	ruledomain.SquareMeter:      0.01,
	ruledomain.Acres:            22,
	ruledomain.SquareKilometers: 5200,
}

const (
	defaultPricePerKilometer         = 1.5
	defaultPricePerHour              = 22
	defaultEquipmentPrice            = 120
	defaultAdvantageReductionPercent = 10
)

// EnsurePricingRules seeds the flat rule matrix when the table is empty:
// one row per (rank, specialization, experience level), cycling surface
// units so every derived key has at least one backing row.
func EnsurePricingRules(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ruledomain.PricingRule{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		units := []ruledomain.SurfaceUnit{
			ruledomain.Hectares,
			ruledomain.SquareMeter,
			ruledomain.Acres,
			ruledomain.SquareKilometers,
		}
		levels := []ruledomain.ExperienceLevel{
			ruledomain.Starter,
			ruledomain.Qualified,
			ruledomain.Expert,
		}

		now := time.Now().UTC()
		rules := make([]ruledomain.PricingRule, 0, 36)
		i := 0
		for _, rank := range []ruledomain.ActorRank{
			ruledomain.Worker,
			ruledomain.Advisor,
			ruledomain.Entrepreneur,
		} {
			for _, spec := range ruledomain.SpecializationsFor(rank) {
				for _, level := range levels {
					unit := units[i%len(units)]
					rules = append(rules, ruledomain.PricingRule{
						ID:                        node.Generate(),
						ActorRank:                 rank,
						Specialization:            spec,
						ExperienceLevel:           level,
						SurfaceUnit:               unit,
						SpecializationBasePrice:   defaultBasePrices[rank],
						ExperienceMultiplier:      defaultMultipliers[level],
						SurfaceUnitPrice:          defaultSurfacePrices[unit],
						PricePerKilometer:         defaultPricePerKilometer,
						PricePerHour:              defaultPricePerHour,
						EquipmentPrice:            defaultEquipmentPrice,
						AdvantageReductionPercent: defaultAdvantageReductionPercent,
						CreatedAt:                 now,
						UpdatedAt:                 now,
					})
					i++
				}
			}
		}

		return tx.Create(&rules).Error
	})
}
