package service

import (
	"context"
	"strings"
	"time"

	actordomain "github.com/agrilinklabs/agrilink/internal/actor/domain"
	"github.com/agrilinklabs/agrilink/internal/notification/domain"
	obsmetrics "github.com/agrilinklabs/agrilink/internal/observability/metrics"
	"github.com/agrilinklabs/agrilink/internal/providers/email"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Email   email.Provider
	Actors  actordomain.Service
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	email   email.Provider
	actors  actordomain.Service
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("notification.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		email:   p.Email,
		actors:  p.Actors,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateNotificationRequest) (domain.Notification, error) {
	actorID, err := snowflake.ParseString(strings.TrimSpace(req.ActorID))
	if err != nil || actorID == 0 {
		return domain.Notification{}, domain.ErrInvalidActor
	}
	if !domain.ValidKind(req.Kind) {
		return domain.Notification{}, domain.ErrInvalidKind
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Notification{}, domain.ErrInvalidTitle
	}

	now := time.Now().UTC()
	notification := domain.Notification{
		ID:        s.genID.Generate(),
		ActorID:   actorID,
		Kind:      req.Kind,
		Title:     title,
		Body:      strings.TrimSpace(req.Body),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &notification); err != nil {
		return domain.Notification{}, err
	}

	// Email dispatch is best-effort: the stored notification is the source
	// of truth, a mail failure must not fail the write.
	s.dispatchEmail(ctx, notification)

	return notification, nil
}

func (s *Service) dispatchEmail(ctx context.Context, notification domain.Notification) {
	actor, err := s.actors.GetByID(ctx, actordomain.GetActorRequest{ID: notification.ActorID.String()})
	if err != nil {
		s.recordDispatch(ctx, "skipped")
		s.log.Warn("notification email skipped: actor lookup failed",
			zap.String("notification_id", notification.ID.String()),
			zap.Error(err),
		)
		return
	}

	err = s.email.Send(ctx, []string{actor.Email}, notification.Title, notification.Body)
	if err != nil {
		s.recordDispatch(ctx, "failure")
		s.log.Warn("notification email failed",
			zap.String("notification_id", notification.ID.String()),
			zap.Error(err),
		)
		return
	}
	s.recordDispatch(ctx, "success")
}

func (s *Service) recordDispatch(ctx context.Context, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordNotificationDispatch(ctx, "email", outcome)
	}
}

func (s *Service) List(ctx context.Context, req domain.ListNotificationRequest) (domain.ListNotificationResponse, error) {
	filter := domain.ListNotificationFilter{
		ActorID:    strings.TrimSpace(req.ActorID),
		UnreadOnly: req.UnreadOnly,
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListNotificationResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(notification *domain.Notification) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        notification.ID.String(),
			CreatedAt: notification.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	notifications := make([]domain.Notification, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		notifications = append(notifications, *item)
	}

	resp := domain.ListNotificationResponse{Notifications: notifications}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) MarkRead(ctx context.Context, rawID string) (domain.Notification, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Notification{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Notification{}, err
	}
	if item == nil {
		return domain.Notification{}, domain.ErrNotFound
	}

	if !item.Read {
		if err := s.repo.MarkRead(ctx, s.db, id); err != nil {
			return domain.Notification{}, err
		}
		item, err = s.repo.FindByID(ctx, s.db, id)
		if err != nil {
			return domain.Notification{}, err
		}
		if item == nil {
			return domain.Notification{}, domain.ErrNotFound
		}
	}

	return *item, nil
}

func (s *Service) MarkAllRead(ctx context.Context, rawActorID string) (int64, error) {
	actorID, err := snowflake.ParseString(strings.TrimSpace(rawActorID))
	if err != nil || actorID == 0 {
		return 0, domain.ErrInvalidActor
	}

	return s.repo.MarkAllRead(ctx, s.db, actorID)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
