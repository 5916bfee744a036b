package sqlstore

import (
	"context"
	"fmt"
	"time"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const createPomodoroSessionsTable = `
CREATE TABLE IF NOT EXISTS pomodoro_sessions (
	id {{pk}},
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	kind TEXT NOT NULL,
	duration_seconds INTEGER NOT NULL,
	started_at {{time}} NOT NULL,
	completed_at {{time}} NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pomodoro_sessions_user_completed ON pomodoro_sessions(user_id, completed_at);
`

type PomodoroRepository struct {
	db *DB
}

func NewPomodoroRepository(db *DB) repository.PomodoroRepository {
	return &PomodoroRepository{db: db}
}

func (r *PomodoroRepository) Init(ctx context.Context) error {
	if err := r.db.createSchema(ctx, createPomodoroSessionsTable); err != nil {
		return fmt.Errorf("create pomodoro_sessions table: %w", err)
	}
	return nil
}

func (r *PomodoroRepository) Create(ctx context.Context, session *domain.PomodoroSession) (int64, error) {
	id, err := r.db.insert(ctx, `
INSERT INTO pomodoro_sessions (user_id, kind, duration_seconds, started_at, completed_at)
VALUES (?, ?, ?, ?, ?)`,
		session.UserID,
		string(session.Kind),
		session.DurationSeconds,
		session.StartedAt.UTC(),
		session.CompletedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert pomodoro session: %w", err)
	}
	session.ID = id
	return id, nil
}

// List returns sessions completed at or after since, newest first.
func (r *PomodoroRepository) List(ctx context.Context, userID int64, since time.Time) ([]domain.PomodoroSession, error) {
	rows, err := r.db.query(ctx, `
SELECT id, user_id, kind, duration_seconds, started_at, completed_at
FROM pomodoro_sessions
WHERE user_id=? AND completed_at >= ?
ORDER BY completed_at DESC, id DESC`, userID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("query pomodoro sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.PomodoroSession{}
	for rows.Next() {
		var (
			s    domain.PomodoroSession
			kind string
		)
		if err := rows.Scan(&s.ID, &s.UserID, &kind, &s.DurationSeconds, &s.StartedAt, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan pomodoro session: %w", err)
		}
		s.Kind = domain.IntervalKind(kind)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
