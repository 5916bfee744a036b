package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

// QuoteService serves motivational quotes.
type QuoteService interface {
	// Seed inserts the given quotes when the table is empty and returns how many were added.
	Seed(ctx context.Context, quotes []domain.Quote) (int, error)
	List(ctx context.Context, tag string) ([]domain.Quote, error)
	// Today returns the quote for the calendar day of t. Every caller sees the same
	// quote for the same date.
	Today(ctx context.Context, t time.Time) (*domain.Quote, error)
	Random(ctx context.Context) (*domain.Quote, error)
}

type quoteService struct {
	quotes repository.QuoteRepository
	intn   func(n int) int
}

func NewQuoteService(quotes repository.QuoteRepository) QuoteService {
	return &quoteService{quotes: quotes, intn: rand.IntN}
}

func (s *quoteService) Seed(ctx context.Context, quotes []domain.Quote) (int, error) {
	n, err := s.quotes.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	added := 0
	for i := range quotes {
		q := quotes[i]
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		if _, err := s.quotes.Create(ctx, &q); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				continue
			}
			return added, fmt.Errorf("seed quotes: %w", err)
		}
		added++
	}
	return added, nil
}

func (s *quoteService) List(ctx context.Context, tag string) ([]domain.Quote, error) {
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, err
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return quotes, nil
	}
	filtered := make([]domain.Quote, 0, len(quotes))
	for _, q := range quotes {
		for _, t := range q.Tags {
			if strings.EqualFold(t, tag) {
				filtered = append(filtered, q)
				break
			}
		}
	}
	return filtered, nil
}

func (s *quoteService) Today(ctx context.Context, t time.Time) (*domain.Quote, error) {
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("quote of the day: %w", repository.ErrNotFound)
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	idx := int(day % int64(len(quotes)))
	if idx < 0 {
		idx += len(quotes)
	}
	q := quotes[idx]
	return &q, nil
}

func (s *quoteService) Random(ctx context.Context) (*domain.Quote, error) {
	quotes, err := s.quotes.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("random quote: %w", repository.ErrNotFound)
	}
	q := quotes[s.intn(len(quotes))]
	return &q, nil
}
