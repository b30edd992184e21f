package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stayhub/internal/errors"
	"stayhub/internal/mail"
	"stayhub/internal/model"
	"stayhub/internal/repository"
)

// ReservationService books and cancels stays.
type ReservationService interface {
	Reserve(ctx context.Context, roomID, userID uuid.UUID, start, end time.Time) (*model.Reservation, error)
	Cancel(ctx context.Context, reservationID uuid.UUID, actingUser *model.User) (*model.Reservation, error)
	CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	userRepo        repository.UserRepository
	mailer          mail.Mailer
}

// NewReservationService creates a new reservation service.
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	userRepo repository.UserRepository,
	mailer mail.Mailer,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		mailer:          mailer,
	}
}

// Reserve books a room for the half-open range [start, end).
//
// The availability check and the insert run inside one transaction with the
// room row locked, so two overlapping attempts for the same room can never
// both succeed; the loser observes the winner's row and gets
// ErrRoomAlreadyBooked.
func (s *reservationService) Reserve(ctx context.Context, roomID, userID uuid.UUID, start, end time.Time) (*model.Reservation, error) {
	if !start.Before(end) {
		return nil, errors.ErrInvalidDateRange
	}

	var reservation *model.Reservation
	var roomTitle string

	err := s.reservationRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ReservationRepository) error {
		room, err := txRepo.FindRoomForUpdate(ctx, roomID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrRoomNotFound
			}
			return err
		}
		if !room.IsAvailable {
			return errors.ErrRoomUnavailable
		}

		overlap, err := txRepo.HasOverlapping(ctx, roomID, start, end)
		if err != nil {
			return err
		}
		if overlap {
			return errors.ErrRoomAlreadyBooked
		}

		reservation = &model.Reservation{
			UserID:     userID,
			RoomID:     roomID,
			StartDate:  start,
			EndDate:    end,
			TotalPrice: TotalPrice(room.Price, start, end),
			Status:     model.ReservationStatusConfirmed,
		}
		roomTitle = room.Title
		return txRepo.Create(ctx, reservation)
	})
	if err != nil {
		return nil, err
	}

	s.notifyConfirmation(userID, roomTitle, reservation)
	return reservation, nil
}

// notifyConfirmation dispatches the confirmation email in the background.
// Failures are logged and never reach the caller.
func (s *reservationService) notifyConfirmation(userID uuid.UUID, roomTitle string, reservation *model.Reservation) {
	r := *reservation
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil || user.Email == "" {
			log.Printf("[email] skipping confirmation for reservation %s: no recipient", r.ID)
			return
		}
		if err := s.mailer.SendReservationConfirmation(
			user.Email, user.FirstName, roomTitle,
			r.StartDate, r.EndDate, r.TotalPrice,
		); err != nil {
			log.Printf("[email] failed to send confirmation: %v", err)
		}
	}()
}

// Cancel sets a reservation to cancelled. Only the owner or an admin may
// cancel. Cancelling an already-cancelled reservation is a no-op success,
// so retries are safe. The freed range is immediately bookable again.
func (s *reservationService) Cancel(ctx context.Context, reservationID uuid.UUID, actingUser *model.User) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrReservationNotFound
		}
		return nil, err
	}

	if reservation.UserID != actingUser.ID && !actingUser.IsAdmin {
		return nil, errors.ErrNotReservationOwner
	}

	if reservation.Status == model.ReservationStatusCancelled {
		return reservation, nil
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, model.ReservationStatusCancelled); err != nil {
		return nil, err
	}
	reservation.Status = model.ReservationStatusCancelled
	return reservation, nil
}

// CheckAvailability reports whether the range is currently bookable,
// applying the same room checks as Reserve. A dry run only: the answer can
// be stale by the time a booking is attempted, and Reserve re-checks under
// lock.
func (s *reservationService) CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	if !start.Before(end) {
		return false, errors.ErrInvalidDateRange
	}

	room, err := s.reservationRepo.FindRoom(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, errors.ErrRoomNotFound
		}
		return false, err
	}
	if !room.IsAvailable {
		return false, nil
	}

	overlap, err := s.reservationRepo.HasOverlapping(ctx, roomID, start, end)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

// ListByUser returns the user's reservations joined with their rooms.
func (s *reservationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Reservation, error) {
	return s.reservationRepo.ListByUser(ctx, userID)
}
