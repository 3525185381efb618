package domain

import (
	"context"
	"errors"

	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
)

type CreateActorRequest struct {
	Rank           ruledomain.ActorRank      `json:"rank"`
	Specialization ruledomain.Specialization `json:"specialization"`
	Email          string                    `json:"email"`
	Password       string                    `json:"password"`
	FirstName      string                    `json:"first_name"`
	LastName       string                    `json:"last_name"`
	Phone          string                    `json:"phone"`
	Region         string                    `json:"region"`
}

type UpdateActorRequest struct {
	ID               string                     `json:"-"`
	Specialization   *ruledomain.Specialization `json:"specialization"`
	Phone            *string                    `json:"phone"`
	Region           *string                    `json:"region"`
	RegistrationStep *RegistrationStep          `json:"registration_step"`
	Active           *bool                      `json:"active"`
}

type ListActorRequest struct {
	PageToken string `form:"page_token"`
	PageSize  int32  `form:"page_size"`
	Rank      string `form:"rank"`
	Region    string `form:"region"`
	Active    *bool  `form:"active"`
}

type ListActorFilter struct {
	Rank   string
	Region string
	Active *bool
}

type ListActorResponse struct {
	pagination.PageInfo
	Actors []Actor `json:"actors"`
}

type GetActorRequest struct {
	ID string
}

type Service interface {
	Create(ctx context.Context, req CreateActorRequest) (Actor, error)
	GetByID(ctx context.Context, req GetActorRequest) (Actor, error)
	List(ctx context.Context, req ListActorRequest) (ListActorResponse, error)
	Update(ctx context.Context, req UpdateActorRequest) (Actor, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID             = errors.New("invalid_id")
	ErrInvalidRank           = errors.New("invalid_rank")
	ErrInvalidSpecialization = errors.New("invalid_specialization")
	ErrInvalidEmail          = errors.New("invalid_email")
	ErrInvalidPassword       = errors.New("invalid_password")
	ErrInvalidName           = errors.New("invalid_name")
	ErrInvalidStep           = errors.New("invalid_registration_step")
	ErrEmailTaken            = errors.New("email_taken")
	ErrNotFound              = errors.New("not_found")
)
