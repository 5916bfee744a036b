package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"devdeck/internal/domain"
	"devdeck/internal/pomodoro"
)

type PomodoroStateResponse struct {
	Kind             domain.IntervalKind `json:"kind"`
	RemainingSeconds int                 `json:"remainingSeconds"`
	TotalSeconds     int                 `json:"totalSeconds"`
	Running          bool                `json:"running"`
	CompletedWork    int                 `json:"completedWork"`
	StartedAt        *string             `json:"startedAt,omitempty"`
}

func stateToResponse(s pomodoro.State) PomodoroStateResponse {
	return PomodoroStateResponse{
		Kind:             s.Kind,
		RemainingSeconds: int(s.Remaining / time.Second),
		TotalSeconds:     int(s.Total / time.Second),
		Running:          s.Running,
		CompletedWork:    s.CompletedWork,
		StartedAt:        formatTimePtr(s.StartedAt),
	}
}

type PomodoroSessionResponse struct {
	ID              int64               `json:"id"`
	Kind            domain.IntervalKind `json:"kind"`
	DurationSeconds int                 `json:"durationSeconds"`
	StartedAt       string              `json:"startedAt"`
	CompletedAt     string              `json:"completedAt"`
}

func (h *Handler) timersEnabled(c *gin.Context) bool {
	if h.Timers == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pomodoro timer not available"})
		return false
	}
	return true
}

func (h *Handler) pomodoroStatus(c *gin.Context) {
	if !h.timersEnabled(c) {
		return
	}
	c.JSON(http.StatusOK, stateToResponse(h.Timers.Status(userID(c))))
}

type pomodoroStartRequest struct {
	Kind domain.IntervalKind `json:"kind"`
}

func (h *Handler) pomodoroStart(c *gin.Context) {
	if !h.timersEnabled(c) {
		return
	}
	var req pomodoroStartRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	state, err := h.Timers.StartTimer(userID(c), req.Kind)
	h.respondTimer(c, state, err)
}

func (h *Handler) pomodoroPause(c *gin.Context) {
	if !h.timersEnabled(c) {
		return
	}
	state, err := h.Timers.Pause(userID(c))
	h.respondTimer(c, state, err)
}

func (h *Handler) pomodoroResume(c *gin.Context) {
	if !h.timersEnabled(c) {
		return
	}
	state, err := h.Timers.Resume(userID(c))
	h.respondTimer(c, state, err)
}

func (h *Handler) pomodoroReset(c *gin.Context) {
	if !h.timersEnabled(c) {
		return
	}
	state, err := h.Timers.Reset(userID(c))
	h.respondTimer(c, state, err)
}

func (h *Handler) pomodoroSkip(c *gin.Context) {
	if !h.timersEnabled(c) {
		return
	}
	state, err := h.Timers.Skip(userID(c))
	h.respondTimer(c, state, err)
}

func (h *Handler) respondTimer(c *gin.Context, state pomodoro.State, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateToResponse(state))
}

// pomodoroSessions lists recorded intervals. The window defaults to the
// current day and can be widened with ?days=N or set with ?since=RFC3339.
func (h *Handler) pomodoroSessions(c *gin.Context) {
	if h.Sessions == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pomodoro history not available"})
		return
	}
	now := h.Now().In(h.Location)
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.Location)
	if v := c.Query("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 1 || days > 366 {
			badRequest(c, "days must be between 1 and 366")
			return
		}
		since = since.AddDate(0, 0, -(days - 1))
	}
	if v := c.Query("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			badRequest(c, "since must be an RFC3339 timestamp")
			return
		}
		since = t
	}

	sessions, stats, err := h.Sessions.Sessions(c.Request.Context(), userID(c), since)
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := make([]PomodoroSessionResponse, len(sessions))
	for i, s := range sessions {
		resp[i] = PomodoroSessionResponse{
			ID:              s.ID,
			Kind:            s.Kind,
			DurationSeconds: s.DurationSeconds,
			StartedAt:       formatTime(s.StartedAt),
			CompletedAt:     formatTime(s.CompletedAt),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"since":    formatTime(since),
		"sessions": resp,
		"stats": gin.H{
			"completedWork": stats.CompletedWork,
			"focusSeconds":  stats.FocusSeconds,
			"breakSeconds":  stats.BreakSeconds,
		},
	})
}
