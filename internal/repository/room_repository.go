package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "stayhub/internal/errors"
	"stayhub/internal/model"
)

// RoomFilters narrows the room listing. Zero values mean "no constraint".
type RoomFilters struct {
	MinPrice int64
	MaxPrice int64
	Capacity int
}

// RoomRepository defines room persistence operations.
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	List(ctx context.Context, filters RoomFilters) ([]model.Room, error)
	DeleteIfUnreserved(ctx context.Context, id uuid.UUID) error
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// Create creates a new room.
func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// Update updates an existing room.
func (r *roomRepository) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// FindByID finds a room by ID.
func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// List returns rooms matching the filters, cheapest first.
func (r *roomRepository) List(ctx context.Context, filters RoomFilters) ([]model.Room, error) {
	q := r.db.WithContext(ctx).Model(&model.Room{})
	if filters.MinPrice > 0 {
		q = q.Where("price >= ?", filters.MinPrice)
	}
	if filters.MaxPrice > 0 {
		q = q.Where("price <= ?", filters.MaxPrice)
	}
	if filters.Capacity > 0 {
		q = q.Where("capacity >= ?", filters.Capacity)
	}

	var rooms []model.Room
	if err := q.Order("price asc").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// DeleteIfUnreserved removes a room and its reviews in one transaction.
// The room row is locked first so a concurrent booking cannot slip past the
// reservation-count guard; rooms with reservation rows in any status are
// kept as booking history and the delete fails with ErrRoomHasReservations.
func (r *roomRepository) DeleteIfUnreserved(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&room).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.Reservation{}).
			Where("room_id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrRoomHasReservations
		}

		if err := tx.Where("room_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Room{}).Error
	})
}
