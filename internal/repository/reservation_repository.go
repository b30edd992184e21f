package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stayhub/internal/model"
)

// ReservationRepository defines reservation persistence operations.
//
// WithTransaction runs fn against a transactional repository; combined with
// FindRoomForUpdate it serializes the availability-check-then-insert sequence
// per room, so two overlapping reserve attempts can never both observe
// "available".
type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	FindRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) error
	HasOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error)
	FindRoomForUpdate(ctx context.Context, roomID uuid.UUID) (*model.Room, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ReservationRepository) error) error
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository.
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// Create creates a new reservation.
func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// FindByID finds a reservation by ID.
func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListByUser returns the user's reservations with their rooms, newest stay first.
func (r *reservationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Room").
		Where("user_id = ?", userID).
		Order("start_date desc").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// UpdateStatus updates the status of a reservation.
func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) error {
	return r.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// HasOverlapping reports whether a non-cancelled reservation for the room
// overlaps the half-open range [start, end). Touching endpoints do not count.
func (r *reservationRepository) HasOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("room_id = ?", roomID).
		Where("status <> ?", model.ReservationStatusCancelled).
		Where("start_date < ?", end).
		Where("end_date > ?", start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindRoom loads a room without locking it. Used by read-only paths such as
// the availability dry run.
func (r *reservationRepository) FindRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).Where("id = ?", roomID).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindRoomForUpdate loads a room with a SELECT ... FOR UPDATE row lock.
// Only meaningful inside WithTransaction.
func (r *reservationRepository) FindRoomForUpdate(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", roomID).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// WithTransaction executes fn within a database transaction.
func (r *reservationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ReservationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &reservationRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
