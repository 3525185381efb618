package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Kind string

var (
	KindMission  Kind = "mission"
	KindDocument Kind = "document"
	KindAccount  Kind = "account"
	KindSystem   Kind = "system"
)

func ValidKind(kind Kind) bool {
	switch kind {
	case KindMission, KindDocument, KindAccount, KindSystem:
		return true
	default:
		return false
	}
}

type Notification struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	ActorID snowflake.ID `gorm:"not null;index" json:"actor_id"`

	Kind  Kind   `gorm:"type:text;not null" json:"kind"`
	Title string `gorm:"not null" json:"title"`
	Body  string `json:"body,omitempty"`

	Read   bool       `gorm:"column:is_read;not null;default:false;index" json:"read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Notification) TableName() string { return "notifications" }
