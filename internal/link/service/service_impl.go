package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/agrilinklabs/agrilink/internal/link/domain"
	"github.com/bwmarrin/snowflake"
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
		log:   p.Log.Named("link.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func validURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func (s *Service) Create(ctx context.Context, req domain.CreateLinkRequest) (domain.Link, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return domain.Link{}, domain.ErrInvalidLabel
	}
	rawURL := strings.TrimSpace(req.URL)
	if !validURL(rawURL) {
		return domain.Link{}, domain.ErrInvalidURL
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	link := domain.Link{
		ID:        s.genID.Generate(),
		Label:     label,
		URL:       rawURL,
		Position:  req.Position,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &link); err != nil {
		return domain.Link{}, err
	}

	return link, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Link, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Link{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Link{}, err
	}
	if item == nil {
		return domain.Link{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListLinkRequest) ([]domain.Link, error) {
	items, err := s.repo.List(ctx, s.db, req.ActiveOnly)
	if err != nil {
		return nil, err
	}

	links := make([]domain.Link, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		links = append(links, *item)
	}
	return links, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateLinkRequest) (domain.Link, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Link{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Link{}, err
	}
	if item == nil {
		return domain.Link{}, domain.ErrNotFound
	}

	if req.Label != nil {
		label := strings.TrimSpace(*req.Label)
		if label == "" {
			return domain.Link{}, domain.ErrInvalidLabel
		}
		item.Label = label
	}
	if req.URL != nil {
		rawURL := strings.TrimSpace(*req.URL)
		if !validURL(rawURL) {
			return domain.Link{}, domain.ErrInvalidURL
		}
		item.URL = rawURL
	}
	if req.Position != nil {
		item.Position = *req.Position
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Link{}, err
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
