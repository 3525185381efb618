package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Link is one entry of the public "useful links" list, ordered by Position.
type Link struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`

	Label    string `gorm:"not null" json:"label"`
	URL      string `gorm:"not null" json:"url"`
	Position int    `gorm:"not null;default:0" json:"position"`
	Active   bool   `gorm:"not null;default:true;index" json:"active"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Link) TableName() string { return "links" }
