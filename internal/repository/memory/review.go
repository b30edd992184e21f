package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/model"
	"stayhub/internal/repository"
)

type reviewRepository struct {
	store *Store
}

// NewReviewRepository creates a review repository over the store.
func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{store: store}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()

	cp := *review
	cp.User = nil
	r.store.reviews[review.ID] = &cp
	return nil
}

func (r *reviewRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]model.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var reviews []model.Review
	for _, review := range r.store.reviews {
		if review.RoomID != roomID {
			continue
		}
		cp := *review
		if user, ok := r.store.users[review.UserID]; ok {
			userCp := *user
			cp.User = &userCp
		}
		reviews = append(reviews, cp)
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}
