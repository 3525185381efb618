package repository

import (
	"context"
	"time"

	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() ruledomain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]ruledomain.PricingRule, error) {
	var items []ruledomain.PricingRule
	err := db.WithContext(ctx).Raw(
		`SELECT id, actor_rank, specialization, experience_level, surface_unit,
		 specialization_base_price, experience_multiplier, surface_unit_price,
		 price_per_kilometer, price_per_hour, equipment_price,
		 advantage_reduction_percent, created_at, updated_at
		 FROM pricing_rules ORDER BY created_at ASC, id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ruledomain.PricingRule, error) {
	var rule ruledomain.PricingRule
	err := db.WithContext(ctx).Raw(
		`SELECT id, actor_rank, specialization, experience_level, surface_unit,
		 specialization_base_price, experience_multiplier, surface_unit_price,
		 price_per_kilometer, price_per_hour, equipment_price,
		 advantage_reduction_percent, created_at, updated_at
		 FROM pricing_rules WHERE id = ?`,
		id,
	).Scan(&rule).Error
	if err != nil {
		return nil, err
	}
	if rule.ID == 0 {
		return nil, nil
	}
	return &rule, nil
}

var updatableFields = map[string]struct{}{
	ruledomain.FieldSpecializationBasePrice: {},
	ruledomain.FieldExperienceMultiplier:    {},
	ruledomain.FieldSurfaceUnitPrice:        {},
}

func (r *repo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (*ruledomain.PricingRule, error) {
	if len(fields) == 0 {
		return nil, ruledomain.ErrInvalidField
	}

	assignments := make(map[string]any, len(fields)+1)
	for name, value := range fields {
		if _, ok := updatableFields[name]; !ok {
			return nil, ruledomain.ErrInvalidField
		}
		assignments[name] = value
	}
	assignments["updated_at"] = time.Now().UTC()

	result := db.WithContext(ctx).
		Model(&ruledomain.PricingRule{}).
		Where("id = ?", id).
		Updates(assignments)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ruledomain.ErrNotFound
	}

	return r.FindByID(ctx, db, id)
}
