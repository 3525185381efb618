package repository

import (
	"context"

	"github.com/agrilinklabs/agrilink/internal/blog/domain"
	"github.com/agrilinklabs/agrilink/pkg/db/option"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, post *domain.Post) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO posts (id, title, slug, body, cover_image_key, published, published_at,
		 created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID,
		post.Title,
		post.Slug,
		post.Body,
		post.CoverImageKey,
		post.Published,
		post.PublishedAt,
		post.CreatedAt,
		post.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Post, error) {
	var post domain.Post
	err := db.WithContext(ctx).Raw(
		`SELECT id, title, slug, body, cover_image_key, published, published_at,
		 created_at, updated_at
		 FROM posts WHERE id = ?`,
		id,
	).Scan(&post).Error
	if err != nil {
		return nil, err
	}
	if post.ID == 0 {
		return nil, nil
	}
	return &post, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Post, error) {
	var post domain.Post
	err := db.WithContext(ctx).Raw(
		`SELECT id, title, slug, body, cover_image_key, published, published_at,
		 created_at, updated_at
		 FROM posts WHERE slug = ?`,
		slug,
	).Scan(&post).Error
	if err != nil {
		return nil, err
	}
	if post.ID == 0 {
		return nil, nil
	}
	return &post, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, publishedOnly bool, page pagination.Pagination) ([]*domain.Post, error) {
	var posts []*domain.Post
	stmt := db.WithContext(ctx).
		Model(&domain.Post{})
	if publishedOnly {
		stmt = stmt.Where("published = ?", true)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, post *domain.Post) error {
	return db.WithContext(ctx).Exec(
		`UPDATE posts SET title = ?, slug = ?, body = ?, cover_image_key = ?, published = ?,
		 published_at = ?, updated_at = ? WHERE id = ?`,
		post.Title,
		post.Slug,
		post.Body,
		post.CoverImageKey,
		post.Published,
		post.PublishedAt,
		post.UpdatedAt,
		post.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM posts WHERE id = ?`, id).Error
}
