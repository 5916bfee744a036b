package sqlstore

import (
	"context"
	"fmt"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const createQuotesTable = `
CREATE TABLE IF NOT EXISTS quotes (
	id {{pk}},
	text TEXT NOT NULL UNIQUE,
	author TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]'
);
`

type QuoteRepository struct {
	db *DB
}

func NewQuoteRepository(db *DB) repository.QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Init(ctx context.Context) error {
	if err := r.db.createSchema(ctx, createQuotesTable); err != nil {
		return fmt.Errorf("create quotes table: %w", err)
	}
	return nil
}

func (r *QuoteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.queryRow(ctx, `SELECT COUNT(*) FROM quotes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count quotes: %w", err)
	}
	return n, nil
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) (int64, error) {
	tags, err := encodeTags(quote.Tags)
	if err != nil {
		return 0, err
	}
	id, err := r.db.insert(ctx, `
INSERT INTO quotes (text, author, tags)
VALUES (?, ?, ?)`, quote.Text, quote.Author, tags)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("quote: %w", repository.ErrConflict)
		}
		return 0, fmt.Errorf("insert quote: %w", err)
	}
	quote.ID = id
	return id, nil
}

func (r *QuoteRepository) List(ctx context.Context) ([]domain.Quote, error) {
	rows, err := r.db.query(ctx, `
SELECT id, text, author, tags
FROM quotes
ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := []domain.Quote{}
	for rows.Next() {
		var (
			q    domain.Quote
			tags string
		)
		if err := rows.Scan(&q.ID, &q.Text, &q.Author, &tags); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		if q.Tags, err = decodeTags(tags); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}
