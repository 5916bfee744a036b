// Package app assembles the devdeck server from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"devdeck/internal/assistant"
	"devdeck/internal/config"
	"devdeck/internal/content"
	apphttp "devdeck/internal/http"
	"devdeck/internal/pomodoro"
	"devdeck/internal/repository/sqlstore"
	"devdeck/internal/service"
	"devdeck/internal/storage"
	"devdeck/internal/tools"
)

// NewLogger builds the process logger from the log settings.
func NewLogger(cfg config.Config) *logrus.Logger {
	logger := logrus.New()
	if strings.EqualFold(cfg.Log.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func openDatabase(cfg config.Config) (*sqlstore.DB, error) {
	dialect := sqlstore.Dialect(cfg.Database.Driver)
	dsn := cfg.Database.Path
	if dialect == sqlstore.DialectPostgres {
		dsn = cfg.Database.DSN
	}
	return sqlstore.Open(dialect, dsn)
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	store := sqlstore.NewStore(db)
	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("init repositories: %w", err)
	}

	catalog, err := content.Load()
	if err != nil {
		return fmt.Errorf("load content catalog: %w", err)
	}

	users := service.NewUserService(store.Users, cfg.Auth.RegisterPassword)
	todos := service.NewTodoService(store.Todos, store.Projects)
	prompts := service.NewPromptService(store.Prompts)
	profiles := service.NewProfileService(store.Profiles)
	quotes := service.NewQuoteService(store.Quotes)
	sessions := service.NewPomodoroService(store.Pomodoro)

	if n, err := quotes.Seed(ctx, catalog.Quotes()); err != nil {
		logger.Warnf("seed quotes: %v", err)
	} else if n > 0 {
		logger.Infof("seeded %d quotes", n)
	}

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("setup storage: %w", err)
	}
	assets := service.NewAssetService(store.Assets, storageSvc, service.AssetConfig{
		Bucket:         cfg.Storage.Bucket,
		KeyPrefix:      cfg.Storage.KeyPrefix,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		URLExpiry:      time.Duration(cfg.Storage.URLExpiryMins) * time.Minute,
	})

	generator, err := buildAssistant(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("setup assistant: %w", err)
	}

	timers := pomodoro.NewManager(pomodoro.Config{
		Durations: pomodoro.Durations{
			Work:           time.Duration(cfg.Pomodoro.WorkMinutes) * time.Minute,
			ShortBreak:     time.Duration(cfg.Pomodoro.ShortBreakMinutes) * time.Minute,
			LongBreak:      time.Duration(cfg.Pomodoro.LongBreakMinutes) * time.Minute,
			LongBreakEvery: cfg.Pomodoro.LongBreakEvery,
		},
		Logger: logger,
	}, sessions)
	if err := timers.Start(ctx); err != nil {
		return fmt.Errorf("start pomodoro manager: %w", err)
	}
	defer timers.Shutdown()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.Deps{
		Users: users,
		Demo: service.NewDemoService(service.DemoConfig{
			Enabled:  cfg.Demo.Enabled,
			Username: cfg.Demo.Username,
			Password: cfg.Demo.Password,
		}, users, todos, prompts, profiles),
		Profiles:       profiles,
		Todos:          todos,
		Prompts:        prompts,
		Assets:         assets,
		Sessions:       sessions,
		Timers:         timers,
		Contact:        service.NewContactService(store.Contacts),
		Quotes:         quotes,
		Assistant:      service.NewAssistantService(generator, time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second),
		Catalog:        catalog,
		UUIDs:          tools.NewUUIDGenerator(),
		DB:             db,
		JWTSecret:      cfg.Auth.JWTSecret,
		TokenTTL:       time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		Location:       time.Local,
		Logger:         logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	logger.Info("bye")
	return nil
}

// buildStorage returns nil when no bucket is configured; asset endpoints then answer 503.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Info("storage bucket not configured, asset uploads disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}

func buildAssistant(ctx context.Context, cfg config.Config, logger *logrus.Logger) (assistant.Generator, error) {
	if strings.TrimSpace(cfg.Assistant.APIKey) == "" {
		logger.Info("assistant API key not configured, assistant disabled")
		return nil, nil
	}
	gemini, err := assistant.NewGemini(ctx, cfg.Assistant.APIKey, cfg.Assistant.Model)
	if err != nil {
		return nil, err
	}
	logger.Infof("assistant enabled with model %s", cfg.Assistant.Model)
	return gemini, nil
}
