package repository

import (
	"context"

	"github.com/agrilinklabs/agrilink/internal/link/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, link *domain.Link) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO links (id, label, url, position, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		link.ID,
		link.Label,
		link.URL,
		link.Position,
		link.Active,
		link.CreatedAt,
		link.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Link, error) {
	var link domain.Link
	err := db.WithContext(ctx).Raw(
		`SELECT id, label, url, position, active, created_at, updated_at
		 FROM links WHERE id = ?`,
		id,
	).Scan(&link).Error
	if err != nil {
		return nil, err
	}
	if link.ID == 0 {
		return nil, nil
	}
	return &link, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*domain.Link, error) {
	var links []*domain.Link
	stmt := db.WithContext(ctx).
		Model(&domain.Link{})
	if activeOnly {
		stmt = stmt.Where("active = ?", true)
	}
	err := stmt.
		Order("position asc, id asc").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, link *domain.Link) error {
	return db.WithContext(ctx).Exec(
		`UPDATE links SET label = ?, url = ?, position = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		link.Label,
		link.URL,
		link.Position,
		link.Active,
		link.UpdatedAt,
		link.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM links WHERE id = ?`, id).Error
}
