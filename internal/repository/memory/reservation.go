package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stayhub/internal/model"
	"stayhub/internal/repository"
)

type reservationRepository struct {
	store *Store

	// inTx marks a repository handed to a WithTransaction callback; such a
	// repository already holds bookingMu and must not re-acquire it.
	inTx bool
}

// NewReservationRepository creates a reservation repository over the store.
func NewReservationRepository(store *Store) repository.ReservationRepository {
	return &reservationRepository{store: store}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	now := time.Now()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	cp := *reservation
	cp.Room = nil
	cp.User = nil
	r.store.reservations[reservation.ID] = &cp
	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	reservation, ok := r.store.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *reservation
	return &cp, nil
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var reservations []model.Reservation
	for _, reservation := range r.store.reservations {
		if reservation.UserID != userID {
			continue
		}
		cp := *reservation
		if room, ok := r.store.rooms[reservation.RoomID]; ok {
			roomCp := *room
			cp.Room = &roomCp
		}
		reservations = append(reservations, cp)
	}
	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].StartDate.After(reservations[j].StartDate)
	})
	return reservations, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	reservation, ok := r.store.reservations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	reservation.Status = status
	reservation.UpdatedAt = time.Now()
	return nil
}

func (r *reservationRepository) HasOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, reservation := range r.store.reservations {
		if reservation.RoomID != roomID {
			continue
		}
		if reservation.Status == model.ReservationStatusCancelled {
			continue
		}
		// Half-open overlap: [s, e) intersects [start, end).
		if reservation.StartDate.Before(end) && reservation.EndDate.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *reservationRepository) FindRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	room, ok := r.store.rooms[roomID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *room
	return &cp, nil
}

func (r *reservationRepository) FindRoomForUpdate(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	// The whole transaction holds bookingMu, which is the in-memory
	// equivalent of the database row lock.
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	room, ok := r.store.rooms[roomID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *room
	return &cp, nil
}

func (r *reservationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.ReservationRepository) error) error {
	if r.inTx {
		return fn(ctx, r)
	}

	r.store.bookingMu.Lock()
	defer r.store.bookingMu.Unlock()

	txRepo := &reservationRepository{store: r.store, inTx: true}
	return fn(ctx, txRepo)
}
