package domain

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TodoProject groups todos under a named, coloured heading.
type TodoProject struct {
	ID        int64
	UserID    int64
	Name      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Todo is a single task in the todo manager.
type Todo struct {
	ID          int64
	UserID      int64
	ProjectID   *int64
	Title       string
	Description string
	Priority    Priority
	Completed   bool
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoFilter narrows a todo listing. Nil fields do not filter.
type TodoFilter struct {
	ProjectID *int64
	Completed *bool
}
