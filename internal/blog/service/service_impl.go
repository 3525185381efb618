package service

import (
	"context"
	"strings"
	"time"

	"github.com/agrilinklabs/agrilink/internal/blog/domain"
	"github.com/agrilinklabs/agrilink/pkg/db"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("blog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePostRequest) (domain.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Post{}, domain.ErrInvalidTitle
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return domain.Post{}, domain.ErrInvalidBody
	}

	now := time.Now().UTC()
	post := domain.Post{
		ID:            s.genID.Generate(),
		Title:         title,
		Slug:          slug.Make(title),
		Body:          body,
		CoverImageKey: strings.TrimSpace(req.CoverImageKey),
		Published:     req.Published,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Published {
		post.PublishedAt = &now
	}

	if err := s.repo.Insert(ctx, s.db, &post); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Post{}, domain.ErrSlugTaken
		}
		return domain.Post{}, err
	}

	return post, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Post, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Post{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Post{}, err
	}
	if item == nil {
		return domain.Post{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) GetBySlug(ctx context.Context, rawSlug string) (domain.Post, error) {
	item, err := s.repo.FindBySlug(ctx, s.db, strings.TrimSpace(rawSlug))
	if err != nil {
		return domain.Post{}, err
	}
	if item == nil {
		return domain.Post{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPostRequest) (domain.ListPostResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, req.PublishedOnly, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListPostResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(post *domain.Post) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        post.ID.String(),
			CreatedAt: post.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	posts := make([]domain.Post, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		posts = append(posts, *item)
	}

	resp := domain.ListPostResponse{Posts: posts}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdatePostRequest) (domain.Post, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Post{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Post{}, err
	}
	if item == nil {
		return domain.Post{}, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Post{}, domain.ErrInvalidTitle
		}
		item.Title = title
		item.Slug = slug.Make(title)
	}
	if req.Body != nil {
		body := strings.TrimSpace(*req.Body)
		if body == "" {
			return domain.Post{}, domain.ErrInvalidBody
		}
		item.Body = body
	}
	if req.CoverImageKey != nil {
		item.CoverImageKey = strings.TrimSpace(*req.CoverImageKey)
	}
	if req.Published != nil && *req.Published != item.Published {
		item.Published = *req.Published
		if item.Published {
			now := time.Now().UTC()
			item.PublishedAt = &now
		} else {
			item.PublishedAt = nil
		}
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Post{}, domain.ErrSlugTaken
		}
		return domain.Post{}, err
	}

	return *item, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
