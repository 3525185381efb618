package repository

import (
	"context"
	"testing"
	"time"

	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRuleRepo(t *testing.T) (*gorm.DB, ruledomain.Repository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ruledomain.PricingRule{}))

	return db, Provide()
}

func insertRule(t *testing.T, db *gorm.DB, id int64, createdAt time.Time) ruledomain.PricingRule {
	t.Helper()

	rule := ruledomain.PricingRule{
		ID:                      snowflake.ID(id),
		ActorRank:               ruledomain.Worker,
		Specialization:          ruledomain.HarvestHand,
		ExperienceLevel:         ruledomain.Starter,
		SurfaceUnit:             ruledomain.Hectares,
		SpecializationBasePrice: 900,
		ExperienceMultiplier:    1,
		SurfaceUnitPrice:        55,
		PricePerKilometer:       1.5,
		PricePerHour:            22,
		EquipmentPrice:          120,
		CreatedAt:               createdAt,
		UpdatedAt:               createdAt,
	}
	require.NoError(t, db.Create(&rule).Error)
	return rule
}

func TestListReturnsRulesInInsertionOrder(t *testing.T) {
	db, repo := setupRuleRepo(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	insertRule(t, db, 3, base.Add(2*time.Minute))
	insertRule(t, db, 1, base)
	insertRule(t, db, 2, base.Add(time.Minute))

	items, err := repo.List(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, snowflake.ID(1), items[0].ID)
	assert.Equal(t, snowflake.ID(2), items[1].ID)
	assert.Equal(t, snowflake.ID(3), items[2].ID)
}

func TestFindByIDMissingReturnsNil(t *testing.T) {
	db, repo := setupRuleRepo(t)

	rule, err := repo.FindByID(context.Background(), db, snowflake.ID(42))
	require.NoError(t, err)
	assert.Nil(t, rule)
}

func TestUpdateFieldsRestrictedToPriceColumns(t *testing.T) {
	db, repo := setupRuleRepo(t)
	inserted := insertRule(t, db, 1, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	updated, err := repo.UpdateFields(context.Background(), db, inserted.ID, map[string]any{
		ruledomain.FieldSpecializationBasePrice: 1200.0,
	})
	require.NoError(t, err)
	assert.Equal(t, 1200.0, updated.SpecializationBasePrice)

	_, err = repo.UpdateFields(context.Background(), db, inserted.ID, map[string]any{
		"actor_rank": "advisor",
	})
	assert.ErrorIs(t, err, ruledomain.ErrInvalidField)

	_, err = repo.UpdateFields(context.Background(), db, inserted.ID, map[string]any{})
	assert.ErrorIs(t, err, ruledomain.ErrInvalidField)
}

func TestUpdateFieldsMissingRow(t *testing.T) {
	db, repo := setupRuleRepo(t)

	_, err := repo.UpdateFields(context.Background(), db, snowflake.ID(99), map[string]any{
		ruledomain.FieldSurfaceUnitPrice: 60.0,
	})
	assert.ErrorIs(t, err, ruledomain.ErrNotFound)
}
