package domain

import (
	"time"

	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

var (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusAssigned  Status = "assigned"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// CanTransition encodes the mission lifecycle. Cancellation is allowed from
// any non-terminal status; completed and cancelled are terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusPublished || to == StatusCancelled
	case StatusPublished:
		return to == StatusAssigned || to == StatusCancelled
	case StatusAssigned:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

type Mission struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerID snowflake.ID `gorm:"not null;index" json:"owner_id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description,omitempty"`

	RequiredRank           ruledomain.ActorRank       `gorm:"type:text;not null" json:"required_rank"`
	RequiredSpecialization ruledomain.Specialization  `gorm:"type:text;not null" json:"required_specialization"`
	RequiredExperience     ruledomain.ExperienceLevel `gorm:"type:text;not null" json:"required_experience"`

	SurfaceArea       float64                `gorm:"type:numeric;not null" json:"surface_area"`
	SurfaceUnit       ruledomain.SurfaceUnit `gorm:"type:text;not null" json:"surface_unit"`
	DistanceKm        float64                `gorm:"type:numeric;not null" json:"distance_km"`
	EstimatedHours    float64                `gorm:"type:numeric;not null" json:"estimated_hours"`
	EquipmentProvided bool                   `gorm:"not null;default:false" json:"equipment_provided"`
	HasAdvantage      bool                   `gorm:"not null;default:false" json:"has_advantage"`

	Status Status `gorm:"type:text;not null;default:'draft';index" json:"status"`

	// Price snapshot taken when the mission is created; re-quoted on demand,
	// never silently recomputed.
	QuotedTotal float64        `gorm:"type:numeric;not null;default:0" json:"quoted_total"`
	QuoteDetail datatypes.JSON `gorm:"type:jsonb" json:"quote_detail,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Mission) TableName() string { return "missions" }
