package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stayhub/internal/model"
)

// ReviewRepository defines review persistence operations. Review removal
// happens with the owning room, inside RoomRepository.DeleteIfUnreserved.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// ListByRoom returns the room's reviews with their authors, newest first.
func (r *reviewRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("room_id = ?", roomID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
