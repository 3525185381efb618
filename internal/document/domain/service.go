package domain

import (
	"context"
	"errors"

	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
)

type CreateDocumentRequest struct {
	ActorID     string `json:"actor_id"`
	Kind        Kind   `json:"kind"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type ReviewDocumentRequest struct {
	ID         string `json:"-"`
	Status     Status `json:"status"`
	ReviewNote string `json:"review_note"`
}

type ListDocumentRequest struct {
	PageToken string `form:"page_token"`
	PageSize  int32  `form:"page_size"`
	ActorID   string `form:"actor_id"`
	Status    string `form:"status"`
	Kind      string `form:"kind"`
}

type ListDocumentFilter struct {
	ActorID string
	Status  string
	Kind    string
}

type ListDocumentResponse struct {
	pagination.PageInfo
	Documents []Document `json:"documents"`
}

type GetDocumentRequest struct {
	ID string
}

type Service interface {
	Create(ctx context.Context, req CreateDocumentRequest) (Document, error)
	GetByID(ctx context.Context, req GetDocumentRequest) (Document, error)
	List(ctx context.Context, req ListDocumentRequest) (ListDocumentResponse, error)
	Review(ctx context.Context, req ReviewDocumentRequest) (Document, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidActor    = errors.New("invalid_actor")
	ErrInvalidKind     = errors.New("invalid_kind")
	ErrInvalidFile     = errors.New("invalid_file")
	ErrInvalidReview   = errors.New("invalid_review")
	ErrAlreadyReviewed = errors.New("already_reviewed")
	ErrNotFound        = errors.New("not_found")
)
