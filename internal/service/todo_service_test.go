package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

func TestTodoValidation(t *testing.T) {
	store := newTestStore(t)
	todos := NewTodoService(store.Todos, store.Projects)
	userID := newTestUser(t, store, "alice")
	ctx := context.Background()

	_, err := todos.CreateTodo(ctx, userID, TodoInput{Title: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = todos.CreateTodo(ctx, userID, TodoInput{Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	missing := int64(999)
	_, err = todos.CreateTodo(ctx, userID, TodoInput{Title: "x", ProjectID: &missing})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = todos.CreateProject(ctx, userID, "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = todos.CreateProject(ctx, userID, "Work", "blue")
	assert.ErrorIs(t, err, ErrInvalidInput)

	todo, err := todos.CreateTodo(ctx, userID, TodoInput{Title: " Ship it "})
	require.NoError(t, err)
	assert.Equal(t, "Ship it", todo.Title)
	assert.Equal(t, domain.PriorityMedium, todo.Priority)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
}

func TestTodoToggle(t *testing.T) {
	store := newTestStore(t)
	todos := NewTodoService(store.Todos, store.Projects)
	userID := newTestUser(t, store, "alice")
	ctx := context.Background()

	todo, err := todos.CreateTodo(ctx, userID, TodoInput{Title: "Write tests", Priority: domain.PriorityHigh})
	require.NoError(t, err)

	toggled, err := todos.ToggleTodo(ctx, userID, todo.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	require.NotNil(t, toggled.CompletedAt)

	stored, err := todos.GetTodo(ctx, userID, todo.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	assert.NotNil(t, stored.CompletedAt)

	toggled, err = todos.ToggleTodo(ctx, userID, todo.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
	assert.Nil(t, toggled.CompletedAt)
}

func TestTodosAreScopedToOwner(t *testing.T) {
	store := newTestStore(t)
	todos := NewTodoService(store.Todos, store.Projects)
	alice := newTestUser(t, store, "alice")
	bob := newTestUser(t, store, "bob")
	ctx := context.Background()

	project, err := todos.CreateProject(ctx, alice, "Work", "#112233")
	require.NoError(t, err)
	todo, err := todos.CreateTodo(ctx, alice, TodoInput{Title: "secret"})
	require.NoError(t, err)

	_, err = todos.GetTodo(ctx, bob, todo.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = todos.ToggleTodo(ctx, bob, todo.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, todos.DeleteTodo(ctx, bob, todo.ID), repository.ErrNotFound)
	assert.ErrorIs(t, todos.DeleteProject(ctx, bob, project.ID), repository.ErrNotFound)

	_, err = todos.CreateTodo(ctx, bob, TodoInput{Title: "sneaky", ProjectID: &project.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := todos.ListTodos(ctx, bob, domain.TodoFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteProjectDetachesTodos(t *testing.T) {
	store := newTestStore(t)
	todos := NewTodoService(store.Todos, store.Projects)
	userID := newTestUser(t, store, "alice")
	ctx := context.Background()

	project, err := todos.CreateProject(ctx, userID, "Work", "")
	require.NoError(t, err)
	todo, err := todos.CreateTodo(ctx, userID, TodoInput{Title: "task", ProjectID: &project.ID})
	require.NoError(t, err)

	inProject, err := todos.ListTodos(ctx, userID, domain.TodoFilter{ProjectID: &project.ID})
	require.NoError(t, err)
	assert.Len(t, inProject, 1)

	require.NoError(t, todos.DeleteProject(ctx, userID, project.ID))

	got, err := todos.GetTodo(ctx, userID, todo.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ProjectID)

	projects, err := todos.ListProjects(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestUpdateProject(t *testing.T) {
	store := newTestStore(t)
	todos := NewTodoService(store.Todos, store.Projects)
	userID := newTestUser(t, store, "alice")
	ctx := context.Background()

	project, err := todos.CreateProject(ctx, userID, "Work", "")
	require.NoError(t, err)

	updated, err := todos.UpdateProject(ctx, userID, project.ID, "Day job", "#abcdef")
	require.NoError(t, err)
	assert.Equal(t, "Day job", updated.Name)
	assert.Equal(t, "#abcdef", updated.Color)

	_, err = todos.UpdateProject(ctx, userID, project.ID+100, "x", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
