package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, link *Link) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Link, error)
	List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*Link, error)
	Update(ctx context.Context, db *gorm.DB, link *Link) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
