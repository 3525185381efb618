package domain

import (
	"context"

	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, actor *Actor) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Actor, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Actor, error)
	List(ctx context.Context, db *gorm.DB, filter ListActorFilter, page pagination.Pagination) ([]*Actor, error)
	Update(ctx context.Context, db *gorm.DB, actor *Actor) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
