package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const maxTitleLength = 200

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TodoInput carries the editable fields of a todo.
type TodoInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	ProjectID   *int64
	DueDate     *time.Time
	Completed   bool
}

// TodoService coordinates todo and project operations for a single user.
type TodoService interface {
	CreateProject(ctx context.Context, userID int64, name, color string) (*domain.TodoProject, error)
	UpdateProject(ctx context.Context, userID, id int64, name, color string) (*domain.TodoProject, error)
	DeleteProject(ctx context.Context, userID, id int64) error
	ListProjects(ctx context.Context, userID int64) ([]domain.TodoProject, error)

	CreateTodo(ctx context.Context, userID int64, in TodoInput) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, userID, id int64, in TodoInput) (*domain.Todo, error)
	ToggleTodo(ctx context.Context, userID, id int64) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, userID, id int64) error
	GetTodo(ctx context.Context, userID, id int64) (*domain.Todo, error)
	ListTodos(ctx context.Context, userID int64, filter domain.TodoFilter) ([]domain.Todo, error)
}

type todoService struct {
	todos    repository.TodoRepository
	projects repository.ProjectRepository
	now      func() time.Time
}

func NewTodoService(todos repository.TodoRepository, projects repository.ProjectRepository) TodoService {
	return &todoService{
		todos:    todos,
		projects: projects,
		now:      time.Now,
	}
}

func validateProject(name, color string) (string, string, error) {
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)
	if name == "" {
		return "", "", fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if len(name) > maxTitleLength {
		return "", "", fmt.Errorf("%w: project name is too long", ErrInvalidInput)
	}
	if color != "" && !hexColor.MatchString(color) {
		return "", "", fmt.Errorf("%w: color must look like #RRGGBB", ErrInvalidInput)
	}
	return name, color, nil
}

func (s *todoService) CreateProject(ctx context.Context, userID int64, name, color string) (*domain.TodoProject, error) {
	name, color, err := validateProject(name, color)
	if err != nil {
		return nil, err
	}
	project := &domain.TodoProject{UserID: userID, Name: name, Color: color}
	if _, err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *todoService) UpdateProject(ctx context.Context, userID, id int64, name, color string) (*domain.TodoProject, error) {
	name, color, err := validateProject(name, color)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	project.Name = name
	project.Color = color
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes the project and keeps its todos, unassigned.
func (s *todoService) DeleteProject(ctx context.Context, userID, id int64) error {
	if _, err := s.projects.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.todos.DetachProject(ctx, userID, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, userID, id)
}

func (s *todoService) ListProjects(ctx context.Context, userID int64) ([]domain.TodoProject, error) {
	return s.projects.List(ctx, userID)
}

func (s *todoService) validateTodo(ctx context.Context, userID int64, in TodoInput) (TodoInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(in.Title) > maxTitleLength {
		return in, fmt.Errorf("%w: title is too long", ErrInvalidInput)
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if !in.Priority.Valid() {
		return in, fmt.Errorf("%w: priority must be low, medium or high", ErrInvalidInput)
	}
	if in.ProjectID != nil {
		if _, err := s.projects.Get(ctx, userID, *in.ProjectID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return in, fmt.Errorf("%w: project %d does not exist", ErrInvalidInput, *in.ProjectID)
			}
			return in, err
		}
	}
	return in, nil
}

func (s *todoService) CreateTodo(ctx context.Context, userID int64, in TodoInput) (*domain.Todo, error) {
	in, err := s.validateTodo(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	todo := &domain.Todo{
		UserID:      userID,
		ProjectID:   in.ProjectID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	}
	s.setCompleted(todo, in.Completed)
	if _, err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, userID, id int64, in TodoInput) (*domain.Todo, error) {
	in, err := s.validateTodo(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	todo, err := s.todos.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	todo.Title = in.Title
	todo.Description = in.Description
	todo.Priority = in.Priority
	todo.ProjectID = in.ProjectID
	todo.DueDate = in.DueDate
	s.setCompleted(todo, in.Completed)
	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) ToggleTodo(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	todo, err := s.todos.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	s.setCompleted(todo, !todo.Completed)
	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// setCompleted keeps CompletedAt in step with the completion flag.
func (s *todoService) setCompleted(todo *domain.Todo, completed bool) {
	if completed == todo.Completed && (completed == (todo.CompletedAt != nil)) {
		return
	}
	todo.Completed = completed
	if completed {
		now := s.now().UTC()
		todo.CompletedAt = &now
	} else {
		todo.CompletedAt = nil
	}
}

func (s *todoService) DeleteTodo(ctx context.Context, userID, id int64) error {
	return s.todos.Delete(ctx, userID, id)
}

func (s *todoService) GetTodo(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	return s.todos.Get(ctx, userID, id)
}

func (s *todoService) ListTodos(ctx context.Context, userID int64, filter domain.TodoFilter) ([]domain.Todo, error) {
	return s.todos.List(ctx, userID, filter)
}
