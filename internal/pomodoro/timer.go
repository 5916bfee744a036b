// Package pomodoro implements the Pomodoro countdown: a per-user interval
// state machine and a manager that drives running timers once per second.
package pomodoro

import (
	"errors"
	"fmt"
	"time"

	"devdeck/internal/domain"
)

var (
	ErrAlreadyRunning = errors.New("timer is already running")
	ErrNotRunning     = errors.New("timer is not running")
	ErrUnknownKind    = errors.New("unknown interval kind")
)

// Durations configures interval lengths. A long break replaces the short
// break after every LongBreakEvery completed work intervals.
type Durations struct {
	Work           time.Duration
	ShortBreak     time.Duration
	LongBreak      time.Duration
	LongBreakEvery int
}

func DefaultDurations() Durations {
	return Durations{
		Work:           25 * time.Minute,
		ShortBreak:     5 * time.Minute,
		LongBreak:      15 * time.Minute,
		LongBreakEvery: 4,
	}
}

func (d Durations) of(kind domain.IntervalKind) time.Duration {
	switch kind {
	case domain.IntervalShortBreak:
		return d.ShortBreak
	case domain.IntervalLongBreak:
		return d.LongBreak
	default:
		return d.Work
	}
}

// State is a snapshot of a timer.
type State struct {
	Kind          domain.IntervalKind
	Remaining     time.Duration
	Total         time.Duration
	Running       bool
	CompletedWork int
	StartedAt     *time.Time
}

// Completion describes an interval that counted down to zero.
type Completion struct {
	Kind        domain.IntervalKind
	Duration    time.Duration
	StartedAt   time.Time
	CompletedAt time.Time
	Next        domain.IntervalKind
}

// Timer is the interval state machine. It is not safe for concurrent use.
type Timer struct {
	durations Durations
	state     State
}

func NewTimer(d Durations) *Timer {
	if d.LongBreakEvery <= 0 {
		d.LongBreakEvery = DefaultDurations().LongBreakEvery
	}
	t := &Timer{durations: d}
	t.enter(domain.IntervalWork)
	return t
}

func (t *Timer) enter(kind domain.IntervalKind) {
	total := t.durations.of(kind)
	t.state.Kind = kind
	t.state.Total = total
	t.state.Remaining = total
	t.state.Running = false
	t.state.StartedAt = nil
}

// State returns a copy of the current state.
func (t *Timer) State() State {
	s := t.state
	if s.StartedAt != nil {
		started := *s.StartedAt
		s.StartedAt = &started
	}
	return s
}

// SetKind switches to a fresh interval of kind. Only allowed while stopped.
func (t *Timer) SetKind(kind domain.IntervalKind) error {
	switch kind {
	case domain.IntervalWork, domain.IntervalShortBreak, domain.IntervalLongBreak:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if t.state.Running {
		return ErrAlreadyRunning
	}
	t.enter(kind)
	return nil
}

// Start begins or continues the current interval.
func (t *Timer) Start(now time.Time) error {
	if t.state.Running {
		return ErrAlreadyRunning
	}
	if t.state.StartedAt == nil {
		started := now
		t.state.StartedAt = &started
	}
	t.state.Running = true
	return nil
}

func (t *Timer) Pause() error {
	if !t.state.Running {
		return ErrNotRunning
	}
	t.state.Running = false
	return nil
}

// Reset stops the timer and refills the current interval.
func (t *Timer) Reset() {
	t.enter(t.state.Kind)
}

// Skip abandons the current interval without recording it. A skipped work
// interval is followed by a short break and does not count toward the long one.
func (t *Timer) Skip() {
	next := domain.IntervalWork
	if t.state.Kind == domain.IntervalWork {
		next = domain.IntervalShortBreak
	}
	t.enter(next)
}

// Tick advances a running timer by one second. When the interval reaches zero
// the timer stops, moves to the following interval and reports the completion.
func (t *Timer) Tick(now time.Time) *Completion {
	if !t.state.Running {
		return nil
	}
	t.state.Remaining -= time.Second
	if t.state.Remaining > 0 {
		return nil
	}

	done := &Completion{
		Kind:        t.state.Kind,
		Duration:    t.state.Total,
		StartedAt:   now.Add(-t.state.Total),
		CompletedAt: now,
	}
	if t.state.StartedAt != nil {
		done.StartedAt = *t.state.StartedAt
	}

	completed := t.state.CompletedWork
	if t.state.Kind == domain.IntervalWork {
		completed++
	}
	t.state.CompletedWork = completed
	done.Next = t.next(completed)
	t.enter(done.Next)
	return done
}

func (t *Timer) next(completedWork int) domain.IntervalKind {
	if t.state.Kind != domain.IntervalWork {
		return domain.IntervalWork
	}
	if completedWork%t.durations.LongBreakEvery == 0 {
		return domain.IntervalLongBreak
	}
	return domain.IntervalShortBreak
}
