package domain

import (
	"context"

	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, post *Post) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Post, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Post, error)
	List(ctx context.Context, db *gorm.DB, publishedOnly bool, page pagination.Pagination) ([]*Post, error)
	Update(ctx context.Context, db *gorm.DB, post *Post) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
