package service

import (
	"fittrack/fitness-tracker/internal/repository/memory"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	store := memory.NewStore()
	return NewAuthService(store.Users(), "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	user, err := svc.Register(ctx, "Alex", "alex@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Empty(t, user.PasswordHash, "hash must never leave the service")

	token, loggedIn, err := svc.Login(ctx, "alex@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)

	// The token must carry the user's ID and verify against the secret.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Register(ctx, "Alex", "alex@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "alex@example.com", "password456")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Register(ctx, "Alex", "alex@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alex@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
