package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const createPromptsTable = `
CREATE TABLE IF NOT EXISTS prompts (
	id {{pk}},
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	favorite {{bool}} NOT NULL DEFAULT {{false}},
	created_at {{time}} NOT NULL,
	updated_at {{time}} NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_prompts_user_id ON prompts(user_id);
`

const selectPromptColumns = `
SELECT id, user_id, title, content, category, tags, favorite, created_at, updated_at
FROM prompts`

type PromptRepository struct {
	db *DB
}

func NewPromptRepository(db *DB) repository.PromptRepository {
	return &PromptRepository{db: db}
}

func (r *PromptRepository) Init(ctx context.Context) error {
	if err := r.db.createSchema(ctx, createPromptsTable); err != nil {
		return fmt.Errorf("create prompts table: %w", err)
	}
	return nil
}

func (r *PromptRepository) Create(ctx context.Context, prompt *domain.Prompt) (int64, error) {
	tags, err := encodeTags(prompt.Tags)
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	prompt.CreatedAt = now
	prompt.UpdatedAt = now

	id, err := r.db.insert(ctx, `
INSERT INTO prompts (user_id, title, content, category, tags, favorite, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		prompt.UserID,
		prompt.Title,
		prompt.Content,
		prompt.Category,
		tags,
		prompt.Favorite,
		prompt.CreatedAt,
		prompt.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert prompt: %w", err)
	}
	prompt.ID = id
	return id, nil
}

func (r *PromptRepository) Update(ctx context.Context, prompt *domain.Prompt) error {
	tags, err := encodeTags(prompt.Tags)
	if err != nil {
		return err
	}
	prompt.UpdatedAt = time.Now().UTC()
	err = r.db.execAffectingOne(ctx, `
UPDATE prompts
SET title=?, content=?, category=?, tags=?, favorite=?, updated_at=?
WHERE id=? AND user_id=?`,
		prompt.Title,
		prompt.Content,
		prompt.Category,
		tags,
		prompt.Favorite,
		prompt.UpdatedAt,
		prompt.ID,
		prompt.UserID,
	)
	if err != nil {
		return fmt.Errorf("update prompt: %w", err)
	}
	return nil
}

func (r *PromptRepository) Delete(ctx context.Context, userID, id int64) error {
	if err := r.db.execAffectingOne(ctx, `DELETE FROM prompts WHERE id=? AND user_id=?`, id, userID); err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	return nil
}

func (r *PromptRepository) Get(ctx context.Context, userID, id int64) (*domain.Prompt, error) {
	row := r.db.queryRow(ctx, selectPromptColumns+`
WHERE id=? AND user_id=?`, id, userID)
	return scanPrompt(row)
}

func (r *PromptRepository) List(ctx context.Context, userID int64, filter domain.PromptFilter) ([]domain.Prompt, error) {
	clauses := []string{"user_id=?"}
	args := []any{userID}
	if filter.Category != "" {
		clauses = append(clauses, "category=?")
		args = append(args, filter.Category)
	}
	if filter.FavoriteOnly {
		clauses = append(clauses, "favorite=?")
		args = append(args, true)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := containsPattern(strings.ToLower(term))
		clauses = append(clauses, `(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}

	query := fmt.Sprintf(`%s
WHERE %s
ORDER BY favorite DESC, updated_at DESC, id DESC`, selectPromptColumns, strings.Join(clauses, " AND "))

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}
	defer rows.Close()

	prompts := []domain.Prompt{}
	for rows.Next() {
		prompt, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, *prompt)
	}
	return prompts, rows.Err()
}

func scanPrompt(row scanner) (*domain.Prompt, error) {
	var (
		prompt domain.Prompt
		tags   string
	)
	if err := row.Scan(
		&prompt.ID,
		&prompt.UserID,
		&prompt.Title,
		&prompt.Content,
		&prompt.Category,
		&tags,
		&prompt.Favorite,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	); err != nil {
		return nil, notFoundOr(err, "prompt")
	}
	decoded, err := decodeTags(tags)
	if err != nil {
		return nil, err
	}
	prompt.Tags = decoded
	return &prompt, nil
}
