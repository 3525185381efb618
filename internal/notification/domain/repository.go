package domain

import (
	"context"

	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, notification *Notification) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Notification, error)
	List(ctx context.Context, db *gorm.DB, filter ListNotificationFilter, page pagination.Pagination) ([]*Notification, error)
	MarkRead(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	MarkAllRead(ctx context.Context, db *gorm.DB, actorID snowflake.ID) (int64, error)
}
