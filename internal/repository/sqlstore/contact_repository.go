package sqlstore

import (
	"context"
	"fmt"
	"time"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const createContactInquiriesTable = `
CREATE TABLE IF NOT EXISTS contact_inquiries (
	id {{pk}},
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL,
	created_at {{time}} NOT NULL
);
`

type ContactRepository struct {
	db *DB
}

func NewContactRepository(db *DB) repository.ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Init(ctx context.Context) error {
	if err := r.db.createSchema(ctx, createContactInquiriesTable); err != nil {
		return fmt.Errorf("create contact_inquiries table: %w", err)
	}
	return nil
}

func (r *ContactRepository) Create(ctx context.Context, inquiry *domain.ContactInquiry) (int64, error) {
	inquiry.CreatedAt = time.Now().UTC()
	id, err := r.db.insert(ctx, `
INSERT INTO contact_inquiries (name, email, subject, message, created_at)
VALUES (?, ?, ?, ?, ?)`,
		inquiry.Name,
		inquiry.Email,
		inquiry.Subject,
		inquiry.Message,
		inquiry.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert contact inquiry: %w", err)
	}
	inquiry.ID = id
	return id, nil
}
