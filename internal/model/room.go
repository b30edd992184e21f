package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room represents a bookable hotel room. Price is the fixed per-night rate
// in minor currency units (cents). Features is an ordered list of strings
// stored as a JSON column.
type Room struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Price       int64          `json:"price" gorm:"not null;index"`
	Capacity    int            `json:"capacity" gorm:"not null;index"`
	Location    string         `json:"location" gorm:"size:255"`
	ImageURL    string         `json:"image_url" gorm:"size:512"`
	Features    datatypes.JSON `json:"features" gorm:"type:json"`
	IsAvailable bool           `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:RoomID"`
	Reviews      []Review      `json:"reviews,omitempty" gorm:"foreignKey:RoomID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
