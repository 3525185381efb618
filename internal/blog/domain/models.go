package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Post struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`

	Title         string `gorm:"not null" json:"title"`
	Slug          string `gorm:"not null;uniqueIndex" json:"slug"`
	Body          string `gorm:"not null" json:"body"`
	CoverImageKey string `json:"cover_image_key,omitempty"`

	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Post) TableName() string { return "posts" }
