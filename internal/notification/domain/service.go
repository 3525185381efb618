package domain

import (
	"context"
	"errors"

	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
)

type CreateNotificationRequest struct {
	ActorID string `json:"actor_id"`
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

type ListNotificationRequest struct {
	PageToken  string `form:"page_token"`
	PageSize   int32  `form:"page_size"`
	ActorID    string `form:"actor_id"`
	UnreadOnly bool   `form:"unread_only"`
}

type ListNotificationFilter struct {
	ActorID    string
	UnreadOnly bool
}

type ListNotificationResponse struct {
	pagination.PageInfo
	Notifications []Notification `json:"notifications"`
}

type Service interface {
	Create(ctx context.Context, req CreateNotificationRequest) (Notification, error)
	List(ctx context.Context, req ListNotificationRequest) (ListNotificationResponse, error)
	MarkRead(ctx context.Context, id string) (Notification, error)
	MarkAllRead(ctx context.Context, actorID string) (int64, error)
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidActor = errors.New("invalid_actor")
	ErrInvalidKind  = errors.New("invalid_kind")
	ErrInvalidTitle = errors.New("invalid_title")
	ErrNotFound     = errors.New("not_found")
)
