package service

import (
	"context"
	"fmt"
	"time"

	"devdeck/internal/domain"
	"devdeck/internal/pomodoro"
	"devdeck/internal/repository"
)

// PomodoroStats summarises a user's recorded intervals.
type PomodoroStats struct {
	CompletedWork int
	FocusSeconds  int
	BreakSeconds  int
}

// PomodoroService persists finished intervals and reports on them.
// It satisfies pomodoro.Recorder.
type PomodoroService interface {
	pomodoro.Recorder
	Sessions(ctx context.Context, userID int64, since time.Time) ([]domain.PomodoroSession, PomodoroStats, error)
}

type pomodoroService struct {
	sessions repository.PomodoroRepository
}

func NewPomodoroService(sessions repository.PomodoroRepository) PomodoroService {
	return &pomodoroService{sessions: sessions}
}

func (s *pomodoroService) RecordCompletion(ctx context.Context, userID int64, c pomodoro.Completion) error {
	session := &domain.PomodoroSession{
		UserID:          userID,
		Kind:            c.Kind,
		DurationSeconds: int(c.Duration / time.Second),
		StartedAt:       c.StartedAt.UTC(),
		CompletedAt:     c.CompletedAt.UTC(),
	}
	if _, err := s.sessions.Create(ctx, session); err != nil {
		return fmt.Errorf("record pomodoro session: %w", err)
	}
	return nil
}

func (s *pomodoroService) Sessions(ctx context.Context, userID int64, since time.Time) ([]domain.PomodoroSession, PomodoroStats, error) {
	sessions, err := s.sessions.List(ctx, userID, since)
	if err != nil {
		return nil, PomodoroStats{}, err
	}
	var stats PomodoroStats
	for _, session := range sessions {
		if session.Kind == domain.IntervalWork {
			stats.CompletedWork++
			stats.FocusSeconds += session.DurationSeconds
			continue
		}
		stats.BreakSeconds += session.DurationSeconds
	}
	return sessions, stats, nil
}
