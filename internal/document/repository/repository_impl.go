package repository

import (
	"context"

	"github.com/agrilinklabs/agrilink/internal/document/domain"
	"github.com/agrilinklabs/agrilink/pkg/db/option"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, document *domain.Document) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO documents (id, actor_id, kind, object_key, file_name, content_type,
		 size_bytes, status, review_note, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		document.ID,
		document.ActorID,
		document.Kind,
		document.ObjectKey,
		document.FileName,
		document.ContentType,
		document.SizeBytes,
		document.Status,
		document.ReviewNote,
		document.CreatedAt,
		document.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Document, error) {
	var document domain.Document
	err := db.WithContext(ctx).Raw(
		`SELECT id, actor_id, kind, object_key, file_name, content_type, size_bytes,
		 status, review_note, created_at, updated_at
		 FROM documents WHERE id = ?`,
		id,
	).Scan(&document).Error
	if err != nil {
		return nil, err
	}
	if document.ID == 0 {
		return nil, nil
	}
	return &document, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListDocumentFilter, page pagination.Pagination) ([]*domain.Document, error) {
	var documents []*domain.Document
	stmt := db.WithContext(ctx).
		Model(&domain.Document{})
	if filter.ActorID != "" {
		stmt = stmt.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Kind != "" {
		stmt = stmt.Where("kind = ?", filter.Kind)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, document *domain.Document) error {
	return db.WithContext(ctx).Exec(
		`UPDATE documents SET status = ?, review_note = ?, updated_at = ? WHERE id = ?`,
		document.Status,
		document.ReviewNote,
		document.UpdatedAt,
		document.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM documents WHERE id = ?`, id).Error
}
