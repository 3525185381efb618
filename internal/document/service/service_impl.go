package service

import (
	"context"
	"strings"
	"time"

	"github.com/agrilinklabs/agrilink/internal/document/domain"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Uploads above this size are refused before an object key is issued.
const maxSizeBytes = 20 << 20

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
		log:   p.Log.Named("document.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateDocumentRequest) (domain.Document, error) {
	actorID, err := snowflake.ParseString(strings.TrimSpace(req.ActorID))
	if err != nil || actorID == 0 {
		return domain.Document{}, domain.ErrInvalidActor
	}
	if !domain.ValidKind(req.Kind) {
		return domain.Document{}, domain.ErrInvalidKind
	}

	fileName := strings.TrimSpace(req.FileName)
	contentType := strings.TrimSpace(req.ContentType)
	if fileName == "" || contentType == "" {
		return domain.Document{}, domain.ErrInvalidFile
	}
	if req.SizeBytes <= 0 || req.SizeBytes > maxSizeBytes {
		return domain.Document{}, domain.ErrInvalidFile
	}

	now := time.Now().UTC()
	document := domain.Document{
		ID:          s.genID.Generate(),
		ActorID:     actorID,
		Kind:        req.Kind,
		ObjectKey:   uuid.NewString(),
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   req.SizeBytes,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &document); err != nil {
		return domain.Document{}, err
	}

	s.log.Info("document registered",
		zap.String("document_id", document.ID.String()),
		zap.String("kind", string(document.Kind)),
		zap.String("object_key", document.ObjectKey),
	)
	return document, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetDocumentRequest) (domain.Document, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Document{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Document{}, err
	}
	if item == nil {
		return domain.Document{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListDocumentRequest) (domain.ListDocumentResponse, error) {
	filter := domain.ListDocumentFilter{
		ActorID: strings.TrimSpace(req.ActorID),
		Status:  strings.TrimSpace(req.Status),
		Kind:    strings.TrimSpace(req.Kind),
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
		return domain.ListDocumentResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(document *domain.Document) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        document.ID.String(),
			CreatedAt: document.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	documents := make([]domain.Document, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		documents = append(documents, *item)
	}

	resp := domain.ListDocumentResponse{Documents: documents}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) Review(ctx context.Context, req domain.ReviewDocumentRequest) (domain.Document, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Document{}, err
	}

	if req.Status != domain.StatusApproved && req.Status != domain.StatusRejected {
		return domain.Document{}, domain.ErrInvalidReview
	}
	note := strings.TrimSpace(req.ReviewNote)
	if req.Status == domain.StatusRejected && note == "" {
		// A rejection without a reason is useless to the actor.
		return domain.Document{}, domain.ErrInvalidReview
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Document{}, err
	}
	if item == nil {
		return domain.Document{}, domain.ErrNotFound
	}
	if item.Status != domain.StatusPending {
		return domain.Document{}, domain.ErrAlreadyReviewed
	}

	item.Status = req.Status
	item.ReviewNote = note
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Document{}, err
	}

	s.log.Info("document reviewed",
		zap.String("document_id", item.ID.String()),
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

	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
