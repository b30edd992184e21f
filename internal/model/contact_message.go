package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage is a visitor enquiry. It is append-only except for the
// reply fields, which an admin sets together exactly once.
type ContactMessage struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"size:255;not null;index"`
	Subject      string     `json:"subject" gorm:"size:255;not null"`
	Message      string     `json:"message" gorm:"type:text;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	RepliedAt    *time.Time `json:"replied_at,omitempty"`
	ReplyMessage string     `json:"reply_message,omitempty" gorm:"type:text"`
	RepliedBy    *uuid.UUID `json:"replied_by,omitempty" gorm:"type:char(36)"`
}

// Replied reports whether an admin has already answered the message.
func (m *ContactMessage) Replied() bool {
	return m.RepliedAt != nil
}

// BeforeCreate sets UUID before creating the record.
func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
