package models

import (
	"time"
)

type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Username    string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"` // bcrypt hash
	FirstName   string `gorm:"size:150" json:"first_name"`
	LastName    string `gorm:"size:150" json:"last_name"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`

	// Optional profile fields
	Age          *uint  `json:"age"`
	Bio          string `gorm:"type:text" json:"bio"`
	ProfileImage string `gorm:"size:500" json:"profile_image"` // opaque blob-store reference
	XLink        string `gorm:"size:200" json:"x_link"`
	LinkedinLink string `gorm:"size:200" json:"linkedin_link"`
	GithubLink   string `gorm:"size:200" json:"github_link"`
	WebsiteLink  string `gorm:"size:200" json:"website_link"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// No DeletedAt, users are removed only through the restrict policy
}
