package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Username: "ada", PasswordHash: "hash"}
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)

	byName, err := repo.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ada", byID.Username)
}

func TestUserRepository_Duplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Username: "ada", PasswordHash: "x"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{Username: "ada", PasswordHash: "y"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewUserRepository(db).GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	uid := createTestUser(t, db, "ada")

	_, err := repo.Get(ctx, uid)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Upsert(ctx, &domain.Profile{UserID: uid, DisplayName: "Ada", Theme: domain.ThemeDark}))
	require.NoError(t, repo.Upsert(ctx, &domain.Profile{UserID: uid, DisplayName: "Ada L.", Theme: domain.ThemeLight}))

	got, err := repo.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.DisplayName)
	assert.Equal(t, domain.ThemeLight, got.Theme)
}
