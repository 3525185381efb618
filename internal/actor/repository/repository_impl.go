package repository

import (
	"context"

	"github.com/agrilinklabs/agrilink/internal/actor/domain"
	"github.com/agrilinklabs/agrilink/pkg/db/option"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, actor *domain.Actor) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO actors (id, rank, specialization, email, password_hash, first_name, last_name,
		 phone, region, registration_step, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		actor.ID,
		actor.Rank,
		actor.Specialization,
		actor.Email,
		actor.PasswordHash,
		actor.FirstName,
		actor.LastName,
		actor.Phone,
		actor.Region,
		actor.RegistrationStep,
		actor.Active,
		actor.CreatedAt,
		actor.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Actor, error) {
	var actor domain.Actor
	err := db.WithContext(ctx).Raw(
		`SELECT id, rank, specialization, email, password_hash, first_name, last_name,
		 phone, region, registration_step, active, created_at, updated_at
		 FROM actors WHERE id = ?`,
		id,
	).Scan(&actor).Error
	if err != nil {
		return nil, err
	}
	if actor.ID == 0 {
		return nil, nil
	}
	return &actor, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Actor, error) {
	var actor domain.Actor
	err := db.WithContext(ctx).Raw(
		`SELECT id, rank, specialization, email, password_hash, first_name, last_name,
		 phone, region, registration_step, active, created_at, updated_at
		 FROM actors WHERE email = ?`,
		email,
	).Scan(&actor).Error
	if err != nil {
		return nil, err
	}
	if actor.ID == 0 {
		return nil, nil
	}
	return &actor, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListActorFilter, page pagination.Pagination) ([]*domain.Actor, error) {
	var actors []*domain.Actor
	stmt := db.WithContext(ctx).
		Model(&domain.Actor{})
	if filter.Rank != "" {
		stmt = stmt.Where("rank = ?", filter.Rank)
	}
	if filter.Region != "" {
		stmt = stmt.Where("region = ?", filter.Region)
	}
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&actors).Error
	if err != nil {
		return nil, err
	}
	return actors, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, actor *domain.Actor) error {
	return db.WithContext(ctx).Exec(
		`UPDATE actors SET specialization = ?, phone = ?, region = ?, registration_step = ?,
		 active = ?, updated_at = ? WHERE id = ?`,
		actor.Specialization,
		actor.Phone,
		actor.Region,
		actor.RegistrationStep,
		actor.Active,
		actor.UpdatedAt,
		actor.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM actors WHERE id = ?`, id).Error
}
