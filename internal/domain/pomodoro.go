package domain

import "time"

// IntervalKind is the type of a Pomodoro interval.
type IntervalKind string

const (
	IntervalWork       IntervalKind = "work"
	IntervalShortBreak IntervalKind = "short_break"
	IntervalLongBreak  IntervalKind = "long_break"
)

// PomodoroSession records one interval that ran to completion.
type PomodoroSession struct {
	ID              int64
	UserID          int64
	Kind            IntervalKind
	DurationSeconds int
	StartedAt       time.Time
	CompletedAt     time.Time
}
