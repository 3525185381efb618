package domain

import (
	"context"
	"errors"

	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/agrilinklabs/agrilink/pkg/db/pagination"
)

type CreateMissionRequest struct {
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	RequiredRank           ruledomain.ActorRank       `json:"required_rank"`
	RequiredSpecialization ruledomain.Specialization  `json:"required_specialization"`
	RequiredExperience     ruledomain.ExperienceLevel `json:"required_experience"`

	SurfaceArea       float64                `json:"surface_area"`
	SurfaceUnit       ruledomain.SurfaceUnit `json:"surface_unit"`
	DistanceKm        float64                `json:"distance_km"`
	EstimatedHours    float64                `json:"estimated_hours"`
	EquipmentProvided bool                   `json:"equipment_provided"`
	HasAdvantage      bool                   `json:"has_advantage"`
}

type UpdateMissionRequest struct {
	ID          string   `json:"-"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	SurfaceArea *float64 `json:"surface_area"`
	DistanceKm  *float64 `json:"distance_km"`

	EstimatedHours *float64 `json:"estimated_hours"`
}

type TransitionMissionRequest struct {
	ID     string `json:"-"`
	Status Status `json:"status"`
}

type ListMissionRequest struct {
	PageToken string `form:"page_token"`
	PageSize  int32  `form:"page_size"`
	OwnerID   string `form:"owner_id"`
	Status    string `form:"status"`
	Rank      string `form:"rank"`
}

type ListMissionFilter struct {
	OwnerID string
	Status  string
	Rank    string
}

type ListMissionResponse struct {
	pagination.PageInfo
	Missions []Mission `json:"missions"`
}

type GetMissionRequest struct {
	ID string
}

type Service interface {
	Create(ctx context.Context, req CreateMissionRequest) (Mission, error)
	GetByID(ctx context.Context, req GetMissionRequest) (Mission, error)
	List(ctx context.Context, req ListMissionRequest) (ListMissionResponse, error)
	Update(ctx context.Context, req UpdateMissionRequest) (Mission, error)
	Transition(ctx context.Context, req TransitionMissionRequest) (Mission, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidOwner      = errors.New("invalid_owner")
	ErrInvalidTitle      = errors.New("invalid_title")
	ErrInvalidProfile    = errors.New("invalid_mission_profile")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrNotFound          = errors.New("not_found")
)
