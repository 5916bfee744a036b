package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store.Users, testRegisterSecret)
	ctx := context.Background()

	_, err := users.Register(ctx, "alice", "password123", "wrong")
	assert.ErrorIs(t, err, ErrInvalidRegistrationPassword)

	_, err = users.Register(ctx, "alice", "short", testRegisterSecret)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = users.Register(ctx, " ", "password123", testRegisterSecret)
	assert.ErrorIs(t, err, ErrInvalidInput)

	user, err := users.Register(ctx, "  alice ", "password123", testRegisterSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = users.Register(ctx, "alice", "password123", testRegisterSecret)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	got, err := users.Authenticate(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = users.Authenticate(ctx, "alice", "password124")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = users.Authenticate(ctx, "bob", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterWithoutSecretConfigured(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store.Users, "")

	_, err := users.Register(context.Background(), "alice", "password123", "")
	assert.Error(t, err)
}

func TestEnsureCreatesOnce(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store.Users, "")
	ctx := context.Background()

	first, created, err := users.Ensure(ctx, "demo", "demo-password")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := users.Ensure(ctx, "demo", "demo-password")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	_, err = users.Authenticate(ctx, "demo", "demo-password")
	assert.NoError(t, err)
}
