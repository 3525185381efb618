package domain

import (
	"context"

	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, document *Document) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Document, error)
	List(ctx context.Context, db *gorm.DB, filter ListDocumentFilter, page pagination.Pagination) ([]*Document, error)
	Update(ctx context.Context, db *gorm.DB, document *Document) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
