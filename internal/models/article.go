package models

import (
	"time"
)

type Article struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Author     User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"author"`
	CategoryID *uint     `gorm:"index" json:"category_id"` // Nullable, uncategorized articles are fine
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category,omitempty"`
	Title      string    `gorm:"not null" json:"title"`
	Body       string    `gorm:"type:text;not null" json:"body"` // Markdown source
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Not stored, filled by store queries
	CommentCount int    `gorm:"-" json:"comment_count"`
	BodyHTML     string `gorm:"-" json:"body_html,omitempty"`
}
