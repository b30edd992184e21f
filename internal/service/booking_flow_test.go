package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/repository/memory"
)

// End-to-end booking flows over the in-memory store, exercising the real
// repository implementations rather than mocks.

func newBookingFixture(t *testing.T) (ReservationService, *model.Room, *model.User) {
	t.Helper()

	store := memory.NewStore()
	reservations := memory.NewReservationRepository(store)
	rooms := memory.NewRoomRepository(store)
	users := memory.NewUserRepository(store)

	room := &model.Room{
		Title:       "Deluxe Suite",
		Price:       25000,
		Capacity:    4,
		IsAvailable: true,
	}
	require.NoError(t, rooms.Create(context.Background(), room))

	user := &model.User{
		Email:     "guest@example.com",
		FirstName: "Guest",
	}
	require.NoError(t, users.Create(context.Background(), user))

	return NewReservationService(reservations, users, newStubMailer(nil)), room, user
}

func TestBookingFlow_ConcurrentReservesOnlyOneWins(t *testing.T) {
	svc, room, user := newBookingFixture(t)

	start := date("2025-07-01T00:00:00Z")
	end := date("2025-07-05T00:00:00Z")

	const attempts = 16
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Reserve(context.Background(), room.ID, user.ID, start, end)
		}(i)
	}
	wg.Wait()

	var won, conflicted int
	for _, err := range errs {
		switch err {
		case nil:
			won++
		case apperrors.ErrRoomAlreadyBooked:
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent attempt must win")
	assert.Equal(t, attempts-1, conflicted)
}

func TestBookingFlow_AbuttingRangesDoNotConflict(t *testing.T) {
	svc, room, user := newBookingFixture(t)

	_, err := svc.Reserve(context.Background(), room.ID, user.ID,
		date("2025-07-01T00:00:00Z"), date("2025-07-05T00:00:00Z"))
	require.NoError(t, err)

	// Next guest checks in the moment the previous one checks out.
	_, err = svc.Reserve(context.Background(), room.ID, user.ID,
		date("2025-07-05T00:00:00Z"), date("2025-07-08T00:00:00Z"))
	assert.NoError(t, err)

	// And a departure touching the first arrival is equally fine.
	_, err = svc.Reserve(context.Background(), room.ID, user.ID,
		date("2025-06-28T00:00:00Z"), date("2025-07-01T00:00:00Z"))
	assert.NoError(t, err)
}

func TestBookingFlow_CancelFreesTheRange(t *testing.T) {
	svc, room, user := newBookingFixture(t)

	start := date("2025-07-01T00:00:00Z")
	end := date("2025-07-05T00:00:00Z")

	first, err := svc.Reserve(context.Background(), room.ID, user.ID, start, end)
	require.NoError(t, err)

	// The range is taken while the booking stands.
	_, err = svc.Reserve(context.Background(), room.ID, user.ID, start, end)
	require.Equal(t, apperrors.ErrRoomAlreadyBooked, err)

	available, err := svc.CheckAvailability(context.Background(), room.ID, start, end)
	require.NoError(t, err)
	assert.False(t, available)

	_, err = svc.Cancel(context.Background(), first.ID, user)
	require.NoError(t, err)

	available, err = svc.CheckAvailability(context.Background(), room.ID, start, end)
	require.NoError(t, err)
	assert.True(t, available)

	second, err := svc.Reserve(context.Background(), room.ID, user.ID, start, end)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBookingFlow_CancelByStrangerLeavesBookingIntact(t *testing.T) {
	svc, room, owner := newBookingFixture(t)

	reservation, err := svc.Reserve(context.Background(), room.ID, owner.ID,
		date("2025-07-01T00:00:00Z"), date("2025-07-05T00:00:00Z"))
	require.NoError(t, err)

	stranger := &model.User{ID: uuid.New()}
	_, err = svc.Cancel(context.Background(), reservation.ID, stranger)
	assert.Equal(t, apperrors.ErrNotReservationOwner, err)

	// The booking still blocks the room.
	available, err := svc.CheckAvailability(context.Background(), room.ID,
		date("2025-07-02T00:00:00Z"), date("2025-07-03T00:00:00Z"))
	require.NoError(t, err)
	assert.False(t, available)

	listed, err := svc.ListByUser(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, model.ReservationStatusConfirmed, listed[0].Status)
}

func TestBookingFlow_ListByUserNewestFirst(t *testing.T) {
	svc, room, user := newBookingFixture(t)

	earlier, err := svc.Reserve(context.Background(), room.ID, user.ID,
		date("2025-07-01T00:00:00Z"), date("2025-07-03T00:00:00Z"))
	require.NoError(t, err)
	later, err := svc.Reserve(context.Background(), room.ID, user.ID,
		date("2025-08-01T00:00:00Z"), date("2025-08-03T00:00:00Z"))
	require.NoError(t, err)

	listed, err := svc.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, later.ID, listed[0].ID)
	assert.Equal(t, earlier.ID, listed[1].ID)
	require.NotNil(t, listed[0].Room)
	assert.Equal(t, room.Title, listed[0].Room.Title)
}
