package repository

import (
	"context"

	"github.com/agrilinklabs/agrilink/internal/mission/domain"
	"github.com/agrilinklabs/agrilink/pkg/db/option"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, mission *domain.Mission) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO missions (id, owner_id, title, description, required_rank,
		 required_specialization, required_experience, surface_area, surface_unit,
		 distance_km, estimated_hours, equipment_provided, has_advantage, status,
		 quoted_total, quote_detail, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mission.ID,
		mission.OwnerID,
		mission.Title,
		mission.Description,
		mission.RequiredRank,
		mission.RequiredSpecialization,
		mission.RequiredExperience,
		mission.SurfaceArea,
		mission.SurfaceUnit,
		mission.DistanceKm,
		mission.EstimatedHours,
		mission.EquipmentProvided,
		mission.HasAdvantage,
		mission.Status,
		mission.QuotedTotal,
		mission.QuoteDetail,
		mission.CreatedAt,
		mission.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Mission, error) {
	var mission domain.Mission
	err := db.WithContext(ctx).Raw(
		`SELECT id, owner_id, title, description, required_rank, required_specialization,
		 required_experience, surface_area, surface_unit, distance_km, estimated_hours,
		 equipment_provided, has_advantage, status, quoted_total, quote_detail,
		 created_at, updated_at
		 FROM missions WHERE id = ?`,
		id,
	).Scan(&mission).Error
	if err != nil {
		return nil, err
	}
	if mission.ID == 0 {
		return nil, nil
	}
	return &mission, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListMissionFilter, page pagination.Pagination) ([]*domain.Mission, error) {
	var missions []*domain.Mission
	stmt := db.WithContext(ctx).
		Model(&domain.Mission{})
	if filter.OwnerID != "" {
		stmt = stmt.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Rank != "" {
		stmt = stmt.Where("required_rank = ?", filter.Rank)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&missions).Error
	if err != nil {
		return nil, err
	}
	return missions, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, mission *domain.Mission) error {
	return db.WithContext(ctx).Exec(
		`UPDATE missions SET title = ?, description = ?, surface_area = ?, distance_km = ?,
		 estimated_hours = ?, status = ?, quoted_total = ?, quote_detail = ?, updated_at = ?
		 WHERE id = ?`,
		mission.Title,
		mission.Description,
		mission.SurfaceArea,
		mission.DistanceKm,
		mission.EstimatedHours,
		mission.Status,
		mission.QuotedTotal,
		mission.QuoteDetail,
		mission.UpdatedAt,
		mission.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM missions WHERE id = ?`, id).Error
}
