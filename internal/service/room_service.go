package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stayhub/internal/cache"
	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/repository"
)

const roomCacheTTL = 5 * time.Minute

// RoomService handles room catalogue operations.
type RoomService interface {
	GetRoom(ctx context.Context, id uuid.UUID) (*model.Room, error)
	ListRooms(ctx context.Context, filters repository.RoomFilters) ([]model.Room, error)
	CreateRoom(ctx context.Context, room *model.Room) error
	UpdateRoom(ctx context.Context, id uuid.UUID, apply func(*model.Room)) (*model.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type roomService struct {
	roomRepo repository.RoomRepository
	cache    *cache.Client
}

// NewRoomService creates a new room service.
func NewRoomService(roomRepo repository.RoomRepository, cache *cache.Client) RoomService {
	return &roomService{
		roomRepo: roomRepo,
		cache:    cache,
	}
}

func (s *roomService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("room:%s", id.String())
}

// GetRoom retrieves a room by ID with caching.
func (s *roomService) GetRoom(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var cached model.Room
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), room, roomCacheTTL)
	return room, nil
}

// ListRooms returns rooms matching the price/capacity filters.
func (s *roomService) ListRooms(ctx context.Context, filters repository.RoomFilters) ([]model.Room, error) {
	return s.roomRepo.List(ctx, filters)
}

// CreateRoom creates a room.
func (s *roomService) CreateRoom(ctx context.Context, room *model.Room) error {
	return s.roomRepo.Create(ctx, room)
}

// UpdateRoom applies a partial update to a room and invalidates its cache
// entry.
func (s *roomService) UpdateRoom(ctx context.Context, id uuid.UUID, apply func(*model.Room)) (*model.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, err
	}

	apply(room)
	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return room, nil
}

// DeleteRoom removes a room and its reviews as one transactional unit.
// Rooms with reservations, in any status, are kept as booking history and
// cannot be deleted.
func (s *roomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if err := s.roomRepo.DeleteIfUnreserved(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrRoomNotFound
		}
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
