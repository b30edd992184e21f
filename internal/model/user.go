package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a guest or administrator account.
// Emails are stored lowercased so uniqueness is case-insensitive.
type User struct {
	ID              uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Email           string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string         `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName       string         `json:"first_name" gorm:"size:100"`
	LastName        string         `json:"last_name" gorm:"size:100"`
	ProfileImageURL string         `json:"profile_image_url,omitempty" gorm:"size:512"`
	IsAdmin         bool           `json:"is_admin" gorm:"default:false;index"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:UserID"`
	Reviews      []Review      `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}

// DisplayName returns the name shown next to reviews.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
