package domain

import (
	"time"

	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/bwmarrin/snowflake"
)

// RegistrationStep tracks how far a multi-step signup wizard has progressed.
// The value is persisted so an actor can resume where they left off.
type RegistrationStep string

var (
	StepProfile   RegistrationStep = "profile"
	StepDocuments RegistrationStep = "documents"
	StepReview    RegistrationStep = "review"
	StepComplete  RegistrationStep = "complete"
)

func ValidRegistrationStep(step RegistrationStep) bool {
	switch step {
	case StepProfile, StepDocuments, StepReview, StepComplete:
		return true
	default:
		return false
	}
}

type Actor struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`

	Rank           ruledomain.ActorRank      `gorm:"type:text;not null;index" json:"rank"`
	Specialization ruledomain.Specialization `gorm:"type:text;not null" json:"specialization"`

	Email        string `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `gorm:"not null" json:"first_name"`
	LastName     string `gorm:"not null" json:"last_name"`
	Phone        string `json:"phone,omitempty"`
	Region       string `json:"region,omitempty"`

	RegistrationStep RegistrationStep `gorm:"type:text;not null;default:'profile'" json:"registration_step"`
	Active           bool             `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Actor) TableName() string { return "actors" }
