package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stayhub/internal/model"
	"stayhub/internal/repository"
)

type contactMessageRepository struct {
	store *Store
}

// NewContactMessageRepository creates a contact message repository over the store.
func NewContactMessageRepository(store *Store) repository.ContactMessageRepository {
	return &contactMessageRepository{store: store}
}

func (r *contactMessageRepository) Create(ctx context.Context, message *model.ContactMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.CreatedAt = time.Now()

	cp := *message
	r.store.messages[message.ID] = &cp
	return nil
}

func (r *contactMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ContactMessage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	message, ok := r.store.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *message
	return &cp, nil
}

func (r *contactMessageRepository) List(ctx context.Context) ([]model.ContactMessage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	messages := make([]model.ContactMessage, 0, len(r.store.messages))
	for _, message := range r.store.messages {
		messages = append(messages, *message)
	}
	sortMessages(messages)
	return messages, nil
}

func (r *contactMessageRepository) ListByEmail(ctx context.Context, email string) ([]model.ContactMessage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var messages []model.ContactMessage
	for _, message := range r.store.messages {
		if strings.EqualFold(message.Email, email) {
			messages = append(messages, *message)
		}
	}
	sortMessages(messages)
	return messages, nil
}

func (r *contactMessageRepository) Reply(ctx context.Context, id uuid.UUID, replyMessage string, repliedBy uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	message, ok := r.store.messages[id]
	if !ok || message.RepliedAt != nil {
		return 0, nil
	}

	now := time.Now()
	admin := repliedBy
	message.ReplyMessage = replyMessage
	message.RepliedAt = &now
	message.RepliedBy = &admin
	return 1, nil
}

func sortMessages(messages []model.ContactMessage) {
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
}
