package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stayhub/internal/errors"
	"stayhub/internal/mail"
	"stayhub/internal/model"
	"stayhub/internal/repository"
)

// ContactService handles visitor enquiries and admin replies.
type ContactService interface {
	CreateMessage(ctx context.Context, message *model.ContactMessage) error
	ListMessages(ctx context.Context) ([]model.ContactMessage, error)
	ListByEmail(ctx context.Context, email string) ([]model.ContactMessage, error)
	Reply(ctx context.Context, messageID uuid.UUID, replyMessage string, admin *model.User) (*model.ContactMessage, error)
}

type contactService struct {
	messageRepo repository.ContactMessageRepository
	mailer      mail.Mailer
}

// NewContactService creates a new contact service.
func NewContactService(messageRepo repository.ContactMessageRepository, mailer mail.Mailer) ContactService {
	return &contactService{
		messageRepo: messageRepo,
		mailer:      mailer,
	}
}

// CreateMessage records a visitor enquiry.
func (s *contactService) CreateMessage(ctx context.Context, message *model.ContactMessage) error {
	return s.messageRepo.Create(ctx, message)
}

// ListMessages returns all enquiries, newest first.
func (s *contactService) ListMessages(ctx context.Context) ([]model.ContactMessage, error) {
	return s.messageRepo.List(ctx)
}

// ListByEmail returns the enquiries submitted under an email address.
func (s *contactService) ListByEmail(ctx context.Context, email string) ([]model.ContactMessage, error) {
	return s.messageRepo.ListByEmail(ctx, email)
}

// Reply answers a message once. The reply fields are set together under a
// guard, so a second reply attempt fails with ErrAlreadyReplied even when
// two admins race. The notification email is dispatched best effort.
func (s *contactService) Reply(ctx context.Context, messageID uuid.UUID, replyMessage string, admin *model.User) (*model.ContactMessage, error) {
	message, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMessageNotFound
		}
		return nil, err
	}

	updated, err := s.messageRepo.Reply(ctx, messageID, replyMessage, admin.ID)
	if err != nil {
		return nil, err
	}
	if updated == 0 {
		return nil, errors.ErrAlreadyReplied
	}

	go func() {
		if err := s.mailer.SendContactReply(
			message.Email, message.Name, message.Subject,
			message.Message, replyMessage,
		); err != nil {
			log.Printf("[email] failed to send contact reply: %v", err)
		}
	}()

	return s.messageRepo.FindByID(ctx, messageID)
}
