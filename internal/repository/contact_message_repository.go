package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stayhub/internal/model"
)

// ContactMessageRepository defines contact message persistence operations.
type ContactMessageRepository interface {
	Create(ctx context.Context, message *model.ContactMessage) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ContactMessage, error)
	List(ctx context.Context) ([]model.ContactMessage, error)
	ListByEmail(ctx context.Context, email string) ([]model.ContactMessage, error)
	Reply(ctx context.Context, id uuid.UUID, replyMessage string, repliedBy uuid.UUID) (int64, error)
}

type contactMessageRepository struct {
	db *gorm.DB
}

// NewContactMessageRepository creates a new contact message repository.
func NewContactMessageRepository(db *gorm.DB) ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

// Create creates a new contact message.
func (r *contactMessageRepository) Create(ctx context.Context, message *model.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindByID finds a contact message by ID.
func (r *contactMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ContactMessage, error) {
	var message model.ContactMessage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// List returns all contact messages, newest first.
func (r *contactMessageRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	var messages []model.ContactMessage
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListByEmail returns the messages submitted under an email, newest first.
func (r *contactMessageRepository) ListByEmail(ctx context.Context, email string) ([]model.ContactMessage, error) {
	var messages []model.ContactMessage
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at desc").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Reply sets the reply fields together, guarded so a message can only be
// answered once. Returns the number of rows updated; zero means the message
// was already replied to (or does not exist).
func (r *contactMessageRepository) Reply(ctx context.Context, id uuid.UUID, replyMessage string, repliedBy uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.ContactMessage{}).
		Where("id = ?", id).
		Where("replied_at IS NULL").
		Updates(map[string]interface{}{
			"reply_message": replyMessage,
			"replied_at":    time.Now(),
			"replied_by":    repliedBy,
		})
	return res.RowsAffected, res.Error
}
