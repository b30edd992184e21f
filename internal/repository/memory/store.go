// Package memory provides process-local implementations of the repository
// interfaces. The server falls back to it when no database is configured,
// so development and tests run without external services.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"stayhub/internal/model"
)

// Store holds all in-memory tables behind a single lock.
type Store struct {
	mu sync.RWMutex

	// bookingMu serializes reservation transactions so the
	// check-then-insert sequence behaves as if globally ordered,
	// matching the row-lock guarantee of the database repositories.
	bookingMu sync.Mutex

	users        map[uuid.UUID]*model.User
	rooms        map[uuid.UUID]*model.Room
	reservations map[uuid.UUID]*model.Reservation
	reviews      map[uuid.UUID]*model.Review
	messages     map[uuid.UUID]*model.ContactMessage
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:        make(map[uuid.UUID]*model.User),
		rooms:        make(map[uuid.UUID]*model.Room),
		reservations: make(map[uuid.UUID]*model.Reservation),
		reviews:      make(map[uuid.UUID]*model.Review),
		messages:     make(map[uuid.UUID]*model.ContactMessage),
	}
}
