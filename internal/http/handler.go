package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"devdeck/internal/content"
	"devdeck/internal/pomodoro"
	"devdeck/internal/repository"
	"devdeck/internal/service"
	"devdeck/internal/tools"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the services the HTTP layer routes to. Nil optional services
// are reported as unavailable by their endpoints.
type Deps struct {
	Users     service.UserService
	Demo      service.DemoService
	Profiles  service.ProfileService
	Todos     service.TodoService
	Prompts   service.PromptService
	Assets    service.AssetService
	Sessions  service.PomodoroService
	Timers    pomodoro.Manager
	Contact   service.ContactService
	Quotes    service.QuoteService
	Assistant service.AssistantService
	Catalog   *content.Catalog
	UUIDs     *tools.UUIDGenerator
	DB        Pinger

	JWTSecret      string
	TokenTTL       time.Duration
	MaxUploadBytes int64
	Location       *time.Location
	Now            func() time.Time
	Logger         *logrus.Logger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	Deps
	tokens *tokenIssuer
}

func NewHandler(deps Deps) *Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Logger == nil {
		deps.Logger = logrus.New()
	}
	if deps.UUIDs == nil {
		deps.UUIDs = tools.NewUUIDGenerator()
	}
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = service.DefaultMaxUploadBytes
	}
	return &Handler{
		Deps:   deps,
		tokens: newTokenIssuer(deps.JWTSecret, deps.TokenTTL, deps.Now),
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestLogger(h.Logger))

	api := router.Group("/api")
	api.Use(h.authenticate())
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.GET("/ready", h.ready)

		auth := api.Group("/auth")
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/demo", h.demoLogin)
		auth.POST("/guest", h.guestLogin)
		auth.GET("/me", requireSession(), h.me)

		t := api.Group("/tools")
		t.POST("/json/format", h.formatJSON)
		t.POST("/json/minify", h.minifyJSON)
		t.POST("/json/validate", h.validateJSON)
		t.POST("/base64/encode", h.encodeBase64)
		t.POST("/base64/decode", h.decodeBase64)
		t.GET("/hash/algorithms", h.hashAlgorithms)
		t.POST("/hash", h.hash)
		t.POST("/uuid", h.generateUUIDs)
		t.GET("/uuid/history", h.uuidHistory)
		t.DELETE("/uuid/history", h.clearUUIDHistory)
		t.POST("/timestamp", h.convertTimestamp)
		t.GET("/timestamp/now", h.timestampNow)
		t.POST("/sql/format", h.formatSQL)

		api.POST("/contact", h.submitContact)
		api.GET("/quotes", h.listQuotes)
		api.GET("/quotes/today", h.quoteOfTheDay)
		api.GET("/quotes/random", h.randomQuote)
		api.GET("/content/hubs", h.listHubs)
		api.GET("/content/hubs/:slug", h.getHub)
		api.GET("/pricing", h.listPlans)
		api.POST("/assistant", requireSession(), h.askAssistant)

		user := api.Group("", requireUser())
		user.GET("/profile", h.getProfile)
		user.PUT("/profile", h.updateProfile)

		user.GET("/projects", h.listProjects)
		user.POST("/projects", h.createProject)
		user.PUT("/projects/:id", h.updateProject)
		user.DELETE("/projects/:id", h.deleteProject)

		user.GET("/todos", h.listTodos)
		user.POST("/todos", h.createTodo)
		user.GET("/todos/:id", h.getTodo)
		user.PUT("/todos/:id", h.updateTodo)
		user.DELETE("/todos/:id", h.deleteTodo)
		user.POST("/todos/:id/toggle", h.toggleTodo)

		user.GET("/prompts", h.listPrompts)
		user.POST("/prompts", h.createPrompt)
		user.GET("/prompts/:id", h.getPrompt)
		user.PUT("/prompts/:id", h.updatePrompt)
		user.DELETE("/prompts/:id", h.deletePrompt)

		user.GET("/assets", h.listAssets)
		user.POST("/assets", h.uploadAsset)
		user.DELETE("/assets", h.deleteAllAssets)
		user.DELETE("/assets/:id", h.deleteAsset)
		user.GET("/storage/objects", h.listObjects)

		user.GET("/pomodoro", h.pomodoroStatus)
		user.POST("/pomodoro/start", h.pomodoroStart)
		user.POST("/pomodoro/pause", h.pomodoroPause)
		user.POST("/pomodoro/resume", h.pomodoroResume)
		user.POST("/pomodoro/reset", h.pomodoroReset)
		user.POST("/pomodoro/skip", h.pomodoroSkip)
		user.GET("/pomodoro/sessions", h.pomodoroSessions)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		})
		switch {
		case status >= http.StatusInternalServerError:
			entry.Warn("request failed")
		default:
			entry.Debug("request")
		}
	}
}

func (h *Handler) ready(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		h.Logger.WithError(err).Warn("readiness check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusFor maps a service error to the HTTP status reported to clients.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, tools.ErrInvalidJSON),
		errors.Is(err, tools.ErrInvalidBase64),
		errors.Is(err, tools.ErrUnknownAlgorithm),
		errors.Is(err, tools.ErrInvalidTimestamp),
		errors.Is(err, tools.ErrInvalidCount),
		errors.Is(err, pomodoro.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidRegistrationPassword):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, content.ErrHubNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, repository.ErrConflict),
		errors.Is(err, pomodoro.ErrAlreadyRunning),
		errors.Is(err, pomodoro.ErrNotRunning):
		return http.StatusConflict
	case errors.Is(err, service.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrAssistantFailed):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	v := formatTime(*t)
	return &v
}
