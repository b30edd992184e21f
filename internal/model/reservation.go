package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationStatus represents the status of a reservation.
type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a confirmed stay in a room over a half-open
// date-time range [StartDate, EndDate). TotalPrice is fixed at creation
// time; the only mutable field afterwards is Status, and the only legal
// transition is confirmed -> cancelled.
type Reservation struct {
	ID         uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID         `json:"user_id" gorm:"type:char(36);not null;index"`
	RoomID     uuid.UUID         `json:"room_id" gorm:"type:char(36);not null;index"`
	StartDate  time.Time         `json:"start_date" gorm:"not null;index"`
	EndDate    time.Time         `json:"end_date" gorm:"not null;index"`
	TotalPrice int64             `json:"total_price" gorm:"not null"`
	Status     ReservationStatus `json:"status" gorm:"type:varchar(20);not null;default:'confirmed';index"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	DeletedAt  gorm.DeletedAt    `json:"-" gorm:"index"`

	// Relations
	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
