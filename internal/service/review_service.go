package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stayhub/internal/errors"
	"stayhub/internal/model"
	"stayhub/internal/repository"
)

// ReviewService handles room reviews.
type ReviewService interface {
	CreateReview(ctx context.Context, roomID, userID uuid.UUID, rating int, comment string) (*model.Review, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]model.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	roomRepo   repository.RoomRepository
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, roomRepo repository.RoomRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		roomRepo:   roomRepo,
	}
}

// CreateReview records a rating and comment for an existing room.
func (s *reviewService) CreateReview(ctx context.Context, roomID, userID uuid.UUID, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.ErrInvalidRating
	}

	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, err
	}

	review := &model.Review{
		UserID:  userID,
		RoomID:  roomID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByRoom returns a room's reviews with their authors.
func (s *reviewService) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]model.Review, error) {
	return s.reviewRepo.ListByRoom(ctx, roomID)
}
