package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the persistence contract the aggregator depends on. The
// backing store owns row lifecycle; callers only read and fan out partial
// updates.
type Repository interface {
	List(ctx context.Context, db *gorm.DB) ([]PricingRule, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PricingRule, error)
	// UpdateFields applies a partial update and returns the authoritative
	// post-update row, server-assigned updated_at included.
	UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (*PricingRule, error)
}

var (
	ErrNotFound     = errors.New("not_found")
	ErrInvalidField = errors.New("invalid_field")
)
