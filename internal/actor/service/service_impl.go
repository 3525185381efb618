package service

import (
	"context"
	"strings"
	"time"

	"github.com/agrilinklabs/agrilink/internal/actor/domain"
	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/agrilinklabs/agrilink/pkg/db"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
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
		log:   p.Log.Named("actor.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateActorRequest) (domain.Actor, error) {
	if !ruledomain.ValidSpecialization(req.Rank, req.Specialization) {
		if len(ruledomain.SpecializationsFor(req.Rank)) == 0 {
			return domain.Actor{}, domain.ErrInvalidRank
		}
		return domain.Actor{}, domain.ErrInvalidSpecialization
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Actor{}, domain.ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return domain.Actor{}, domain.ErrInvalidPassword
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return domain.Actor{}, domain.ErrInvalidName
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Actor{}, err
	}

	now := time.Now().UTC()
	actor := domain.Actor{
		ID:               s.genID.Generate(),
		Rank:             req.Rank,
		Specialization:   req.Specialization,
		Email:            email,
		PasswordHash:     string(hash),
		FirstName:        firstName,
		LastName:         lastName,
		Phone:            strings.TrimSpace(req.Phone),
		Region:           strings.TrimSpace(req.Region),
		RegistrationStep: domain.StepProfile,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, &actor); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Actor{}, domain.ErrEmailTaken
		}
		return domain.Actor{}, err
	}

	s.log.Info("actor created",
		zap.String("actor_id", actor.ID.String()),
		zap.String("rank", string(actor.Rank)),
	)
	return actor, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetActorRequest) (domain.Actor, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Actor{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Actor{}, err
	}
	if item == nil {
		return domain.Actor{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListActorRequest) (domain.ListActorResponse, error) {
	filter := domain.ListActorFilter{
		Rank:   strings.TrimSpace(req.Rank),
		Region: strings.TrimSpace(req.Region),
		Active: req.Active,
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
		return domain.ListActorResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(actor *domain.Actor) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        actor.ID.String(),
			CreatedAt: actor.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	actors := make([]domain.Actor, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		actors = append(actors, *item)
	}

	resp := domain.ListActorResponse{Actors: actors}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateActorRequest) (domain.Actor, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Actor{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Actor{}, err
	}
	if item == nil {
		return domain.Actor{}, domain.ErrNotFound
	}

	if req.Specialization != nil {
		if !ruledomain.ValidSpecialization(item.Rank, *req.Specialization) {
			return domain.Actor{}, domain.ErrInvalidSpecialization
		}
		item.Specialization = *req.Specialization
	}
	if req.Phone != nil {
		item.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Region != nil {
		item.Region = strings.TrimSpace(*req.Region)
	}
	if req.RegistrationStep != nil {
		if !domain.ValidRegistrationStep(*req.RegistrationStep) {
			return domain.Actor{}, domain.ErrInvalidStep
		}
		item.RegistrationStep = *req.RegistrationStep
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Actor{}, err
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
