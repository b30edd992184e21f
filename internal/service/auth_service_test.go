package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/auth"
	"stayhub/internal/repository"
	"stayhub/internal/repository/memory"
)

// fakeTokenStore keeps refresh tokens in a map so auth tests run without
// Redis.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]struct {
		userID uuid.UUID
		email  string
	}
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]struct {
		userID uuid.UUID
		email  string
	})}
}

func (f *fakeTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[tokenID] = struct {
		userID uuid.UUID
		email  string
	}{userID, email}
	return nil
}

func (f *fakeTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.tokens[tokenID]
	if !ok {
		return uuid.Nil, "", ErrInvalidRefreshToken
	}
	return record.userID, record.email, nil
}

func (f *fakeTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, tokenID)
	return nil
}

func newAuthFixture(adminEmail string) (AuthService, repository.UserRepository) {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	jwtService := auth.NewJWTService("test-secret")
	return NewAuthService(users, jwtService, newFakeTokenStore(), adminEmail), users
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture("")
	ctx := context.Background()

	user, err := svc.Register(ctx, "Guest@Example.com", "secret123", "Guest", "One")
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.False(t, user.IsAdmin)

	// Duplicate registration is rejected regardless of email casing.
	_, err = svc.Register(ctx, "guest@example.com", "another", "Guest", "Two")
	assert.Equal(t, ErrUserAlreadyExists, err)

	access, refresh, loggedIn, err := svc.Login(ctx, "guest@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, _, err = svc.Login(ctx, "guest@example.com", "wrong-password")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_AdminElevationHappensOnceAtLogin(t *testing.T) {
	svc, users := newAuthFixture("owner@example.com")
	ctx := context.Background()

	registered, err := svc.Register(ctx, "owner@example.com", "secret123", "Site", "Owner")
	require.NoError(t, err)
	assert.False(t, registered.IsAdmin, "registration alone must not elevate")

	_, _, loggedIn, err := svc.Login(ctx, "owner@example.com", "secret123")
	require.NoError(t, err)
	assert.True(t, loggedIn.IsAdmin)

	// The elevation is persisted, not just reflected on the returned value.
	stored, err := users.FindByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)

	// Other accounts are never elevated.
	_, err = svc.Register(ctx, "guest@example.com", "secret123", "Guest", "One")
	require.NoError(t, err)
	_, _, guest, err := svc.Login(ctx, "guest@example.com", "secret123")
	require.NoError(t, err)
	assert.False(t, guest.IsAdmin)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	svc, _ := newAuthFixture("")
	ctx := context.Background()

	_, err := svc.Register(ctx, "guest@example.com", "secret123", "Guest", "One")
	require.NoError(t, err)
	_, refresh, _, err := svc.Login(ctx, "guest@example.com", "secret123")
	require.NoError(t, err)

	access, err := svc.RefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	_, err = svc.RefreshToken(ctx, "not-a-token")
	assert.Equal(t, ErrInvalidRefreshToken, err)

	// After logout the refresh token is gone.
	require.NoError(t, svc.Logout(ctx, refresh))
	_, err = svc.RefreshToken(ctx, refresh)
	assert.Equal(t, ErrInvalidRefreshToken, err)
}
