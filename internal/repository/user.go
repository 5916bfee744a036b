package repository

import (
	"context"
	"errors"

	"devdeck/internal/domain"
)

var (
	// ErrNotFound is returned when a row does not exist or belongs to another user.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint rejects a write.
	ErrConflict = errors.New("already exists")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ProfileRepository stores per-user preferences.
type ProfileRepository interface {
	Init(ctx context.Context) error
	Get(ctx context.Context, userID int64) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
}
