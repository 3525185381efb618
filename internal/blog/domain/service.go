package domain

import (
	"context"
	"errors"

	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
)

type CreatePostRequest struct {
	Title         string `json:"title"`
	Body          string `json:"body"`
	CoverImageKey string `json:"cover_image_key"`
	Published     bool   `json:"published"`
}

type UpdatePostRequest struct {
	ID            string  `json:"-"`
	Title         *string `json:"title"`
	Body          *string `json:"body"`
	CoverImageKey *string `json:"cover_image_key"`
	Published     *bool   `json:"published"`
}

type ListPostRequest struct {
	PageToken     string `form:"page_token"`
	PageSize      int32  `form:"page_size"`
	PublishedOnly bool   `form:"-"`
}

type ListPostResponse struct {
	pagination.PageInfo
	Posts []Post `json:"posts"`
}

type Service interface {
	Create(ctx context.Context, req CreatePostRequest) (Post, error)
	GetByID(ctx context.Context, id string) (Post, error)
	GetBySlug(ctx context.Context, slug string) (Post, error)
	List(ctx context.Context, req ListPostRequest) (ListPostResponse, error)
	Update(ctx context.Context, req UpdatePostRequest) (Post, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidTitle = errors.New("invalid_title")
	ErrInvalidBody  = errors.New("invalid_body")
	ErrSlugTaken    = errors.New("slug_taken")
	ErrNotFound     = errors.New("not_found")
)
