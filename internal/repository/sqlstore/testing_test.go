package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"devdeck/internal/domain"
)

// newTestDB opens an in-memory database with every table created.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, NewStore(db).Init(context.Background()))
	return db
}

func createTestUser(t *testing.T, db *DB, username string) int64 {
	t.Helper()
	id, err := NewUserRepository(db).Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return id
}
