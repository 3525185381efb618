package repository

import (
	"context"
	"time"

	"github.com/agrilinklabs/agrilink/internal/notification/domain"
	"github.com/agrilinklabs/agrilink/pkg/db/option"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, notification *domain.Notification) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO notifications (id, actor_id, kind, title, body, is_read, read_at,
		 created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		notification.ID,
		notification.ActorID,
		notification.Kind,
		notification.Title,
		notification.Body,
		notification.Read,
		notification.ReadAt,
		notification.CreatedAt,
		notification.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Notification, error) {
	var notification domain.Notification
	err := db.WithContext(ctx).Raw(
		`SELECT id, actor_id, kind, title, body, is_read, read_at, created_at, updated_at
		 FROM notifications WHERE id = ?`,
		id,
	).Scan(&notification).Error
	if err != nil {
		return nil, err
	}
	if notification.ID == 0 {
		return nil, nil
	}
	return &notification, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListNotificationFilter, page pagination.Pagination) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	stmt := db.WithContext(ctx).
		Model(&domain.Notification{})
	if filter.ActorID != "" {
		stmt = stmt.Where("actor_id = ?", filter.ActorID)
	}
	if filter.UnreadOnly {
		stmt = stmt.Where("is_read = ?", false)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *repo) MarkRead(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	now := time.Now().UTC()
	return db.WithContext(ctx).Exec(
		`UPDATE notifications SET is_read = ?, read_at = ?, updated_at = ? WHERE id = ?`,
		true, now, now, id,
	).Error
}

func (r *repo) MarkAllRead(ctx context.Context, db *gorm.DB, actorID snowflake.ID) (int64, error) {
	now := time.Now().UTC()
	result := db.WithContext(ctx).Exec(
		`UPDATE notifications SET is_read = ?, read_at = ?, updated_at = ?
		 WHERE actor_id = ? AND is_read = ?`,
		true, now, now, actorID, false,
	)
	return result.RowsAffected, result.Error
}
