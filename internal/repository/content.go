package repository

import (
	"context"
	"time"

	"devdeck/internal/domain"
)

// PromptRepository stores prompt vault entries.
type PromptRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, prompt *domain.Prompt) (int64, error)
	Update(ctx context.Context, prompt *domain.Prompt) error
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (*domain.Prompt, error)
	List(ctx context.Context, userID int64, filter domain.PromptFilter) ([]domain.Prompt, error)
}

// AssetRepository stores metadata for uploaded files.
type AssetRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, asset *domain.Asset) (int64, error)
	Delete(ctx context.Context, userID, id int64) error
	DeleteAll(ctx context.Context, userID int64) (int64, error)
	Get(ctx context.Context, userID, id int64) (*domain.Asset, error)
	List(ctx context.Context, userID int64) ([]domain.Asset, error)
}

// PomodoroRepository records completed Pomodoro intervals.
type PomodoroRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, session *domain.PomodoroSession) (int64, error)
	List(ctx context.Context, userID int64, since time.Time) ([]domain.PomodoroSession, error)
}

// ContactRepository stores contact form submissions.
type ContactRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, inquiry *domain.ContactInquiry) (int64, error)
}

// QuoteRepository stores motivational quotes.
type QuoteRepository interface {
	Init(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, quote *domain.Quote) (int64, error)
	List(ctx context.Context) ([]domain.Quote, error)
}
