package domain

import (
	"context"
	"errors"
)

type CreateLinkRequest struct {
	Label    string `json:"label"`
	URL      string `json:"url"`
	Position int    `json:"position"`
	Active   *bool  `json:"active"`
}

type UpdateLinkRequest struct {
	ID       string  `json:"-"`
	Label    *string `json:"label"`
	URL      *string `json:"url"`
	Position *int    `json:"position"`
	Active   *bool   `json:"active"`
}

type ListLinkRequest struct {
	ActiveOnly bool
}

type Service interface {
	Create(ctx context.Context, req CreateLinkRequest) (Link, error)
	GetByID(ctx context.Context, id string) (Link, error)
	List(ctx context.Context, req ListLinkRequest) ([]Link, error)
	Update(ctx context.Context, req UpdateLinkRequest) (Link, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidLabel = errors.New("invalid_label")
	ErrInvalidURL   = errors.New("invalid_url")
	ErrNotFound     = errors.New("not_found")
)
