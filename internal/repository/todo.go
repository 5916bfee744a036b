package repository

import (
	"context"

	"devdeck/internal/domain"
)

// ProjectRepository exposes persistence operations for todo projects.
type ProjectRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, project *domain.TodoProject) (int64, error)
	Update(ctx context.Context, project *domain.TodoProject) error
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (*domain.TodoProject, error)
	List(ctx context.Context, userID int64) ([]domain.TodoProject, error)
}

// TodoRepository exposes persistence operations for todos.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (*domain.Todo, error)
	List(ctx context.Context, userID int64, filter domain.TodoFilter) ([]domain.Todo, error)
	DetachProject(ctx context.Context, userID, projectID int64) error
}
