package sqlstore

import (
	"context"
	"fmt"
	"time"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	display_name TEXT NOT NULL DEFAULT '',
	theme TEXT NOT NULL DEFAULT 'system',
	updated_at {{time}} NOT NULL
);
`

type ProfileRepository struct {
	db *DB
}

func NewProfileRepository(db *DB) repository.ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Init(ctx context.Context) error {
	if err := r.db.createSchema(ctx, createProfilesTable); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	var (
		profile domain.Profile
		theme   string
	)
	err := r.db.queryRow(ctx, `
SELECT user_id, display_name, theme, updated_at
FROM profiles
WHERE user_id = ?`, userID).Scan(&profile.UserID, &profile.DisplayName, &theme, &profile.UpdatedAt)
	if err != nil {
		return nil, notFoundOr(err, "profile")
	}
	profile.Theme = domain.Theme(theme)
	return &profile, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	profile.UpdatedAt = time.Now().UTC()
	_, err := r.db.exec(ctx, `
INSERT INTO profiles (user_id, display_name, theme, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET
	display_name = excluded.display_name,
	theme = excluded.theme,
	updated_at = excluded.updated_at`,
		profile.UserID,
		profile.DisplayName,
		string(profile.Theme),
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
