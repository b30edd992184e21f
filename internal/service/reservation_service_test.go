package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/repository"
)

// MockReservationRepository is a mock implementation of ReservationRepository.
// WithTransaction executes the callback against the mock itself so service
// logic inside the transaction is exercised.
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReservationRepository) HasOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, roomID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) FindRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockReservationRepository) FindRoomForUpdate(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockReservationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.ReservationRepository) error) error {
	return fn(ctx, m)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// stubMailer records sends and can simulate delivery failures. sent is
// closed after the first confirmation so tests can wait for the async
// dispatch.
type stubMailer struct {
	mu       sync.Mutex
	err      error
	sent     chan struct{}
	sentOnce sync.Once
	count    int
}

func newStubMailer(err error) *stubMailer {
	return &stubMailer{err: err, sent: make(chan struct{})}
}

func (s *stubMailer) SendReservationConfirmation(to, firstName, roomTitle string, start, end time.Time, totalPrice int64) error {
	s.mu.Lock()
	s.count++
	s.mu.Unlock()
	s.sentOnce.Do(func() { close(s.sent) })
	return s.err
}

func (s *stubMailer) SendContactReply(to, name, subject, originalMessage, replyMessage string) error {
	s.sentOnce.Do(func() { close(s.sent) })
	return s.err
}

func TestReservationService_Reserve(t *testing.T) {
	roomID := uuid.New()
	userID := uuid.New()
	room := &model.Room{
		ID:          roomID,
		Title:       "Standard Double Room",
		Price:       12000,
		Capacity:    2,
		IsAvailable: true,
	}

	tests := []struct {
		name          string
		start         time.Time
		end           time.Time
		setupMock     func(*MockReservationRepository)
		expectedError error
		expectedPrice int64
	}{
		{
			name:  "successful booking computes price and confirms",
			start: date("2025-06-01T14:00:00Z"),
			end:   date("2025-06-04T11:00:00Z"),
			setupMock: func(m *MockReservationRepository) {
				m.On("FindRoomForUpdate", mock.Anything, roomID).Return(room, nil)
				m.On("HasOverlapping", mock.Anything, roomID, mock.Anything, mock.Anything).Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Reservation")).Return(nil)
			},
			expectedPrice: 36000,
		},
		{
			name:          "start after end is rejected before any query",
			start:         date("2025-06-05T00:00:00Z"),
			end:           date("2025-06-01T00:00:00Z"),
			setupMock:     func(m *MockReservationRepository) {},
			expectedError: apperrors.ErrInvalidDateRange,
		},
		{
			name:          "zero-length range is rejected",
			start:         date("2025-06-01T00:00:00Z"),
			end:           date("2025-06-01T00:00:00Z"),
			setupMock:     func(m *MockReservationRepository) {},
			expectedError: apperrors.ErrInvalidDateRange,
		},
		{
			name:  "unknown room",
			start: date("2025-06-01T00:00:00Z"),
			end:   date("2025-06-05T00:00:00Z"),
			setupMock: func(m *MockReservationRepository) {
				m.On("FindRoomForUpdate", mock.Anything, roomID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrRoomNotFound,
		},
		{
			name:  "overlapping range conflicts",
			start: date("2025-06-03T00:00:00Z"),
			end:   date("2025-06-06T00:00:00Z"),
			setupMock: func(m *MockReservationRepository) {
				m.On("FindRoomForUpdate", mock.Anything, roomID).Return(room, nil)
				m.On("HasOverlapping", mock.Anything, roomID, mock.Anything, mock.Anything).Return(true, nil)
			},
			expectedError: apperrors.ErrRoomAlreadyBooked,
		},
		{
			name:  "room closed for booking",
			start: date("2025-06-01T00:00:00Z"),
			end:   date("2025-06-05T00:00:00Z"),
			setupMock: func(m *MockReservationRepository) {
				closed := *room
				closed.IsAvailable = false
				m.On("FindRoomForUpdate", mock.Anything, roomID).Return(&closed, nil)
			},
			expectedError: apperrors.ErrRoomUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReservationRepository)
			tt.setupMock(mockRepo)

			mockUsers := new(MockUserRepository)
			mockUsers.On("FindByID", mock.Anything, userID).Return(&model.User{
				ID:        userID,
				Email:     "guest@example.com",
				FirstName: "Guest",
			}, nil).Maybe()

			mailer := newStubMailer(nil)
			svc := NewReservationService(mockRepo, mockUsers, mailer)

			reservation, err := svc.Reserve(context.Background(), roomID, userID, tt.start, tt.end)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, reservation)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, reservation)
				assert.Equal(t, model.ReservationStatusConfirmed, reservation.Status)
				assert.Equal(t, tt.expectedPrice, reservation.TotalPrice)
				assert.Equal(t, roomID, reservation.RoomID)
				assert.Equal(t, userID, reservation.UserID)

				select {
				case <-mailer.sent:
				case <-time.After(2 * time.Second):
					t.Fatal("confirmation email was never dispatched")
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReservationService_Reserve_EmailFailureDoesNotAffectBooking(t *testing.T) {
	roomID := uuid.New()
	userID := uuid.New()

	mockRepo := new(MockReservationRepository)
	mockRepo.On("FindRoomForUpdate", mock.Anything, roomID).Return(&model.Room{
		ID: roomID, Title: "Deluxe Suite", Price: 25000, IsAvailable: true,
	}, nil)
	mockRepo.On("HasOverlapping", mock.Anything, roomID, mock.Anything, mock.Anything).Return(false, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Reservation")).Return(nil)

	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByID", mock.Anything, userID).Return(&model.User{
		ID: userID, Email: "guest@example.com",
	}, nil)

	mailer := newStubMailer(errors.New("smtp unreachable"))
	svc := NewReservationService(mockRepo, mockUsers, mailer)

	reservation, err := svc.Reserve(context.Background(), roomID, userID,
		date("2025-06-01T00:00:00Z"), date("2025-06-05T00:00:00Z"))

	assert.NoError(t, err)
	assert.NotNil(t, reservation)
	assert.Equal(t, model.ReservationStatusConfirmed, reservation.Status)

	select {
	case <-mailer.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation email was never attempted")
	}
}

func TestReservationService_Cancel(t *testing.T) {
	reservationID := uuid.New()
	ownerID := uuid.New()

	owner := &model.User{ID: ownerID}
	admin := &model.User{ID: uuid.New(), IsAdmin: true}
	stranger := &model.User{ID: uuid.New()}

	confirmed := func() *model.Reservation {
		return &model.Reservation{
			ID:     reservationID,
			UserID: ownerID,
			Status: model.ReservationStatusConfirmed,
		}
	}

	tests := []struct {
		name          string
		actingUser    *model.User
		setupMock     func(*MockReservationRepository)
		expectedError error
	}{
		{
			name:       "owner can cancel",
			actingUser: owner,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindByID", mock.Anything, reservationID).Return(confirmed(), nil)
				m.On("UpdateStatus", mock.Anything, reservationID, model.ReservationStatusCancelled).Return(nil)
			},
		},
		{
			name:       "admin can cancel",
			actingUser: admin,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindByID", mock.Anything, reservationID).Return(confirmed(), nil)
				m.On("UpdateStatus", mock.Anything, reservationID, model.ReservationStatusCancelled).Return(nil)
			},
		},
		{
			name:       "stranger cannot cancel and status is untouched",
			actingUser: stranger,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindByID", mock.Anything, reservationID).Return(confirmed(), nil)
			},
			expectedError: apperrors.ErrNotReservationOwner,
		},
		{
			name:       "cancelling twice is a no-op success",
			actingUser: owner,
			setupMock: func(m *MockReservationRepository) {
				cancelled := confirmed()
				cancelled.Status = model.ReservationStatusCancelled
				m.On("FindByID", mock.Anything, reservationID).Return(cancelled, nil)
			},
		},
		{
			name:       "missing reservation",
			actingUser: owner,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindByID", mock.Anything, reservationID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrReservationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReservationRepository)
			tt.setupMock(mockRepo)

			svc := NewReservationService(mockRepo, new(MockUserRepository), newStubMailer(nil))
			reservation, err := svc.Cancel(context.Background(), reservationID, tt.actingUser)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, reservation)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, reservation)
				assert.Equal(t, model.ReservationStatusCancelled, reservation.Status)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReservationService_CheckAvailability(t *testing.T) {
	roomID := uuid.New()
	openRoom := &model.Room{ID: roomID, Title: "Standard Double Room", Price: 12000, IsAvailable: true}
	start := date("2025-06-01T00:00:00Z")
	end := date("2025-06-05T00:00:00Z")

	t.Run("overlap makes the range unavailable", func(t *testing.T) {
		mockRepo := new(MockReservationRepository)
		mockRepo.On("FindRoom", mock.Anything, roomID).Return(openRoom, nil)
		mockRepo.On("HasOverlapping", mock.Anything, roomID, mock.Anything, mock.Anything).Return(true, nil)
		svc := NewReservationService(mockRepo, new(MockUserRepository), newStubMailer(nil))

		available, err := svc.CheckAvailability(context.Background(), roomID, start, end)
		assert.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("free range on an open room is available", func(t *testing.T) {
		mockRepo := new(MockReservationRepository)
		mockRepo.On("FindRoom", mock.Anything, roomID).Return(openRoom, nil)
		mockRepo.On("HasOverlapping", mock.Anything, roomID, mock.Anything, mock.Anything).Return(false, nil)
		svc := NewReservationService(mockRepo, new(MockUserRepository), newStubMailer(nil))

		available, err := svc.CheckAvailability(context.Background(), roomID, start, end)
		assert.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("unknown room is an error, not available", func(t *testing.T) {
		mockRepo := new(MockReservationRepository)
		mockRepo.On("FindRoom", mock.Anything, roomID).Return(nil, gorm.ErrRecordNotFound)
		svc := NewReservationService(mockRepo, new(MockUserRepository), newStubMailer(nil))

		available, err := svc.CheckAvailability(context.Background(), roomID, start, end)
		assert.Equal(t, apperrors.ErrRoomNotFound, err)
		assert.False(t, available)
	})

	t.Run("closed room is never available", func(t *testing.T) {
		closed := *openRoom
		closed.IsAvailable = false
		mockRepo := new(MockReservationRepository)
		mockRepo.On("FindRoom", mock.Anything, roomID).Return(&closed, nil)
		svc := NewReservationService(mockRepo, new(MockUserRepository), newStubMailer(nil))

		available, err := svc.CheckAvailability(context.Background(), roomID, start, end)
		assert.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("invalid range is rejected", func(t *testing.T) {
		svc := NewReservationService(new(MockReservationRepository), new(MockUserRepository), newStubMailer(nil))

		_, err := svc.CheckAvailability(context.Background(), roomID, end, start)
		assert.Equal(t, apperrors.ErrInvalidDateRange, err)
	})
}
