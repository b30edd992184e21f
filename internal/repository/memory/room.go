package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/repository"
)

type roomRepository struct {
	store *Store
}

// NewRoomRepository creates a room repository over the store.
func NewRoomRepository(store *Store) repository.RoomRepository {
	return &roomRepository{store: store}
}

func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	cp := *room
	r.store.rooms[room.ID] = &cp
	return nil
}

func (r *roomRepository) Update(ctx context.Context, room *model.Room) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.rooms[room.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	room.UpdatedAt = time.Now()
	cp := *room
	r.store.rooms[room.ID] = &cp
	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	room, ok := r.store.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *room
	return &cp, nil
}

func (r *roomRepository) List(ctx context.Context, filters repository.RoomFilters) ([]model.Room, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rooms := make([]model.Room, 0, len(r.store.rooms))
	for _, room := range r.store.rooms {
		if filters.MinPrice > 0 && room.Price < filters.MinPrice {
			continue
		}
		if filters.MaxPrice > 0 && room.Price > filters.MaxPrice {
			continue
		}
		if filters.Capacity > 0 && room.Capacity < filters.Capacity {
			continue
		}
		rooms = append(rooms, *room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Price < rooms[j].Price })
	return rooms, nil
}

func (r *roomRepository) DeleteIfUnreserved(ctx context.Context, id uuid.UUID) error {
	// bookingMu keeps the reservation-count guard atomic against an
	// in-flight booking transaction, mirroring the row lock the database
	// implementation takes. Lock order is bookingMu then mu everywhere.
	r.store.bookingMu.Lock()
	defer r.store.bookingMu.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.rooms[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, reservation := range r.store.reservations {
		if reservation.RoomID == id {
			return apperrors.ErrRoomHasReservations
		}
	}

	for reviewID, review := range r.store.reviews {
		if review.RoomID == id {
			delete(r.store.reviews, reviewID)
		}
	}
	delete(r.store.rooms, id)
	return nil
}
