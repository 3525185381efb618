package domain

import (
	"context"

	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, mission *Mission) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Mission, error)
	List(ctx context.Context, db *gorm.DB, filter ListMissionFilter, page pagination.Pagination) ([]*Mission, error)
	Update(ctx context.Context, db *gorm.DB, mission *Mission) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
