package domain

import "time"

// Prompt is an entry in a user's prompt vault.
type Prompt struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	Category  string
	Tags      []string
	Favorite  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PromptFilter struct {
	Category     string
	FavoriteOnly bool
	Search       string
}
