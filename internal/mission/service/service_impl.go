package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/agrilinklabs/agrilink/internal/mission/domain"
	quotedomain "github.com/agrilinklabs/agrilink/internal/quote/domain"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Quote quotedomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	quote quotedomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("mission.service"),
		genID: p.GenID,
		repo:  p.Repo,
		quote: p.Quote,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateMissionRequest) (domain.Mission, error) {
	ownerID, err := snowflake.ParseString(strings.TrimSpace(req.OwnerID))
	if err != nil || ownerID == 0 {
		return domain.Mission{}, domain.ErrInvalidOwner
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Mission{}, domain.ErrInvalidTitle
	}

	quoteReq := quotedomain.Request{
		ActorRank:          req.RequiredRank,
		Specialization:     req.RequiredSpecialization,
		ExperienceLevel:    req.RequiredExperience,
		SurfaceUnit:        req.SurfaceUnit,
		SurfaceArea:        req.SurfaceArea,
		DistanceKm:         req.DistanceKm,
		EstimatedHours:     req.EstimatedHours,
		EquipmentRequested: !req.EquipmentProvided,
		HasAdvantage:       req.HasAdvantage,
	}
	if err := quoteReq.Validate(); err != nil {
		return domain.Mission{}, domain.ErrInvalidProfile
	}

	estimate, err := s.quote.Estimate(ctx, quoteReq)
	if err != nil {
		return domain.Mission{}, err
	}

	detail, err := json.Marshal(estimate)
	if err != nil {
		return domain.Mission{}, err
	}

	now := time.Now().UTC()
	mission := domain.Mission{
		ID:                     s.genID.Generate(),
		OwnerID:                ownerID,
		Title:                  title,
		Description:            strings.TrimSpace(req.Description),
		RequiredRank:           req.RequiredRank,
		RequiredSpecialization: req.RequiredSpecialization,
		RequiredExperience:     req.RequiredExperience,
		SurfaceArea:            req.SurfaceArea,
		SurfaceUnit:            req.SurfaceUnit,
		DistanceKm:             req.DistanceKm,
		EstimatedHours:         req.EstimatedHours,
		EquipmentProvided:      req.EquipmentProvided,
		HasAdvantage:           req.HasAdvantage,
		Status:                 domain.StatusDraft,
		QuotedTotal:            estimate.Total.InexactFloat64(),
		QuoteDetail:            datatypes.JSON(detail),
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.repo.Insert(ctx, s.db, &mission); err != nil {
		return domain.Mission{}, err
	}

	s.log.Info("mission created",
		zap.String("mission_id", mission.ID.String()),
		zap.String("required_rank", string(mission.RequiredRank)),
		zap.Float64("quoted_total", mission.QuotedTotal),
	)
	return mission, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetMissionRequest) (domain.Mission, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Mission{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Mission{}, err
	}
	if item == nil {
		return domain.Mission{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListMissionRequest) (domain.ListMissionResponse, error) {
	filter := domain.ListMissionFilter{
		OwnerID: strings.TrimSpace(req.OwnerID),
		Status:  strings.TrimSpace(req.Status),
		Rank:    strings.TrimSpace(req.Rank),
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
		return domain.ListMissionResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(mission *domain.Mission) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        mission.ID.String(),
			CreatedAt: mission.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	missions := make([]domain.Mission, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		missions = append(missions, *item)
	}

	resp := domain.ListMissionResponse{Missions: missions}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateMissionRequest) (domain.Mission, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Mission{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Mission{}, err
	}
	if item == nil {
		return domain.Mission{}, domain.ErrNotFound
	}
	if item.Status != domain.StatusDraft {
		// Figures are frozen once the mission is visible to workers.
		return domain.Mission{}, domain.ErrInvalidTransition
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Mission{}, domain.ErrInvalidTitle
		}
		item.Title = title
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	requote := false
	if req.SurfaceArea != nil {
		item.SurfaceArea = *req.SurfaceArea
		requote = true
	}
	if req.DistanceKm != nil {
		item.DistanceKm = *req.DistanceKm
		requote = true
	}
	if req.EstimatedHours != nil {
		item.EstimatedHours = *req.EstimatedHours
		requote = true
	}

	if requote {
		estimate, err := s.quote.Estimate(ctx, quotedomain.Request{
			ActorRank:          item.RequiredRank,
			Specialization:     item.RequiredSpecialization,
			ExperienceLevel:    item.RequiredExperience,
			SurfaceUnit:        item.SurfaceUnit,
			SurfaceArea:        item.SurfaceArea,
			DistanceKm:         item.DistanceKm,
			EstimatedHours:     item.EstimatedHours,
			EquipmentRequested: !item.EquipmentProvided,
			HasAdvantage:       item.HasAdvantage,
		})
		if err != nil {
			return domain.Mission{}, err
		}
		detail, err := json.Marshal(estimate)
		if err != nil {
			return domain.Mission{}, err
		}
		item.QuotedTotal = estimate.Total.InexactFloat64()
		item.QuoteDetail = datatypes.JSON(detail)
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Mission{}, err
	}

	return *item, nil
}

func (s *Service) Transition(ctx context.Context, req domain.TransitionMissionRequest) (domain.Mission, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Mission{}, err
	}

	switch req.Status {
	case domain.StatusDraft, domain.StatusPublished, domain.StatusAssigned,
		domain.StatusCompleted, domain.StatusCancelled:
	default:
		return domain.Mission{}, domain.ErrInvalidStatus
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Mission{}, err
	}
	if item == nil {
		return domain.Mission{}, domain.ErrNotFound
	}

	if !domain.CanTransition(item.Status, req.Status) {
		return domain.Mission{}, domain.ErrInvalidTransition
	}

	item.Status = req.Status
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Mission{}, err
	}

	s.log.Info("mission status changed",
		zap.String("mission_id", item.ID.String()),
		zap.String("status", string(item.Status)),
	)
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
	if item.Status != domain.StatusDraft && item.Status != domain.StatusCancelled {
		return domain.ErrInvalidTransition
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
