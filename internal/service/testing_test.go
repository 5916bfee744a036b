package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"devdeck/internal/repository/sqlstore"
)

const testRegisterSecret = "let-me-in"

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	db, err := sqlstore.Open(sqlstore.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := sqlstore.NewStore(db)
	require.NoError(t, store.Init(context.Background()))
	return store
}

// newTestUser registers a user and returns its id.
func newTestUser(t *testing.T, store *sqlstore.Store, username string) int64 {
	t.Helper()
	users := NewUserService(store.Users, testRegisterSecret)
	user, err := users.Register(context.Background(), username, "password123", testRegisterSecret)
	require.NoError(t, err)
	return user.ID
}
