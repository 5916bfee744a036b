package pomodoro

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"devdeck/internal/domain"
)

// Recorder persists completed intervals.
type Recorder interface {
	RecordCompletion(ctx context.Context, userID int64, c Completion) error
}

// Manager owns one timer per user and drives running timers in the background.
type Manager interface {
	Start(ctx context.Context) error
	Shutdown()
	StartTimer(userID int64, kind domain.IntervalKind) (State, error)
	Pause(userID int64) (State, error)
	Resume(userID int64) (State, error)
	Reset(userID int64) (State, error)
	Skip(userID int64) (State, error)
	Status(userID int64) State
}

type Config struct {
	Durations    Durations
	TickInterval time.Duration
	Now          func() time.Time
	Logger       *logrus.Logger
}

type manager struct {
	cfg      Config
	recorder Recorder

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	timers map[int64]*timerHandle
}

type timerHandle struct {
	timer  *Timer
	cancel context.CancelFunc
	gen    uint64
}

func NewManager(cfg Config, recorder Recorder) Manager {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.Durations == (Durations{}) {
		cfg.Durations = DefaultDurations()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &manager{
		cfg:      cfg,
		recorder: recorder,
		timers:   make(map[int64]*timerHandle),
	}
}

func (m *manager) Start(ctx context.Context) error {
	if m.cancel != nil {
		return errors.New("pomodoro manager already started")
	}
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.cfg.Logger.Infof("pomodoro manager started, tick every %s", m.cfg.TickInterval)
	return nil
}

func (m *manager) Shutdown() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.cfg.Logger.Info("pomodoro manager stopped")
}

// handle returns the user's timer, creating an idle work timer on first use.
// Callers hold m.mu.
func (m *manager) handle(userID int64) *timerHandle {
	h, ok := m.timers[userID]
	if !ok {
		h = &timerHandle{timer: NewTimer(m.cfg.Durations)}
		m.timers[userID] = h
	}
	return h
}

func (m *manager) StartTimer(userID int64, kind domain.IntervalKind) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.handle(userID)
	if kind != "" && kind != h.timer.State().Kind {
		if err := h.timer.SetKind(kind); err != nil {
			return h.timer.State(), err
		}
	}
	if err := m.run(userID, h); err != nil {
		return h.timer.State(), err
	}
	return h.timer.State(), nil
}

func (m *manager) Resume(userID int64) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.handle(userID)
	if err := m.run(userID, h); err != nil {
		return h.timer.State(), err
	}
	return h.timer.State(), nil
}

func (m *manager) Pause(userID int64) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.handle(userID)
	if err := h.timer.Pause(); err != nil {
		return h.timer.State(), err
	}
	m.stop(h)
	return h.timer.State(), nil
}

func (m *manager) Reset(userID int64) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.handle(userID)
	m.stop(h)
	h.timer.Reset()
	return h.timer.State(), nil
}

func (m *manager) Skip(userID int64) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.handle(userID)
	m.stop(h)
	h.timer.Skip()
	return h.timer.State(), nil
}

func (m *manager) Status(userID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handle(userID).timer.State()
}

// run starts the timer and its ticking goroutine. Callers hold m.mu.
func (m *manager) run(userID int64, h *timerHandle) error {
	if m.ctx == nil {
		return errors.New("pomodoro manager not started")
	}
	if err := m.ctx.Err(); err != nil {
		return err
	}
	if err := h.timer.Start(m.cfg.Now()); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(m.ctx)
	h.gen++
	h.cancel = cancel
	gen := h.gen

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()
		m.tickLoop(ctx, userID, h, gen)
	}()
	return nil
}

// stop cancels the ticking goroutine, if any. Callers hold m.mu.
func (m *manager) stop(h *timerHandle) {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.gen++
}

func (m *manager) tickLoop(ctx context.Context, userID int64, h *timerHandle, gen uint64) {
	ticker := time.NewTicker(m.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		m.mu.Lock()
		if h.gen != gen {
			// paused, reset or restarted since this loop began
			m.mu.Unlock()
			return
		}
		done := h.timer.Tick(m.cfg.Now())
		if done != nil {
			h.cancel = nil
		}
		m.mu.Unlock()

		if done != nil {
			m.complete(ctx, userID, *done)
			return
		}
	}
}

func (m *manager) complete(ctx context.Context, userID int64, done Completion) {
	log := m.cfg.Logger.WithFields(logrus.Fields{
		"user_id": userID,
		"kind":    done.Kind,
		"next":    done.Next,
	})
	log.Info("pomodoro interval completed")

	if m.recorder == nil {
		return
	}
	// a finished interval is recorded even if the user pauses or the server stops meanwhile
	recordCtx := context.WithoutCancel(ctx)
	if err := m.recorder.RecordCompletion(recordCtx, userID, done); err != nil {
		log.WithError(err).Warn("record pomodoro session")
	}
}
