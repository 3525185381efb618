package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Kind string

var (
	KindIDCard        Kind = "id_card"
	KindDiploma       Kind = "diploma"
	KindInsurance     Kind = "insurance"
	KindKbis          Kind = "kbis"
	KindCertification Kind = "certification"
)

func ValidKind(kind Kind) bool {
	switch kind {
	case KindIDCard, KindDiploma, KindInsurance, KindKbis, KindCertification:
		return true
	default:
		return false
	}
}

type Status string

var (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Document is upload metadata only. The bytes live in external object
// storage under ObjectKey; this service never touches them.
type Document struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	ActorID snowflake.ID `gorm:"not null;index" json:"actor_id"`

	Kind        Kind   `gorm:"type:text;not null" json:"kind"`
	ObjectKey   string `gorm:"not null;uniqueIndex" json:"object_key"`
	FileName    string `gorm:"not null" json:"file_name"`
	ContentType string `gorm:"not null" json:"content_type"`
	SizeBytes   int64  `gorm:"not null" json:"size_bytes"`

	Status     Status `gorm:"type:text;not null;default:'pending';index" json:"status"`
	ReviewNote string `json:"review_note,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }
