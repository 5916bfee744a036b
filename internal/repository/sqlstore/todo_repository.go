package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id {{pk}},
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	project_id BIGINT NULL REFERENCES todo_projects(id) ON DELETE SET NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT 'medium',
	completed {{bool}} NOT NULL DEFAULT {{false}},
	due_date {{time}} NULL,
	completed_at {{time}} NULL,
	created_at {{time}} NOT NULL,
	updated_at {{time}} NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id);
CREATE INDEX IF NOT EXISTS idx_todos_project_id ON todos(project_id);
`

const selectTodoColumns = `
SELECT id, user_id, project_id, title, description, priority, completed, due_date, completed_at, created_at, updated_at
FROM todos`

type TodoRepository struct {
	db *DB
}

func NewTodoRepository(db *DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if err := r.db.createSchema(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	id, err := r.db.insert(ctx, `
INSERT INTO todos (user_id, project_id, title, description, priority, completed, due_date, completed_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.UserID,
		nullInt64(todo.ProjectID),
		todo.Title,
		todo.Description,
		string(todo.Priority),
		todo.Completed,
		nullTime(todo.DueDate),
		nullTime(todo.CompletedAt),
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert todo: %w", err)
	}
	todo.ID = id
	return id, nil
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	todo.UpdatedAt = time.Now().UTC()
	err := r.db.execAffectingOne(ctx, `
UPDATE todos
SET project_id=?, title=?, description=?, priority=?, completed=?, due_date=?, completed_at=?, updated_at=?
WHERE id=? AND user_id=?`,
		nullInt64(todo.ProjectID),
		todo.Title,
		todo.Description,
		string(todo.Priority),
		todo.Completed,
		nullTime(todo.DueDate),
		nullTime(todo.CompletedAt),
		todo.UpdatedAt,
		todo.ID,
		todo.UserID,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, userID, id int64) error {
	if err := r.db.execAffectingOne(ctx, `DELETE FROM todos WHERE id=? AND user_id=?`, id, userID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) Get(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	row := r.db.queryRow(ctx, selectTodoColumns+`
WHERE id=? AND user_id=?`, id, userID)
	return scanTodo(row)
}

func (r *TodoRepository) List(ctx context.Context, userID int64, filter domain.TodoFilter) ([]domain.Todo, error) {
	clauses := []string{"user_id=?"}
	args := []any{userID}
	if filter.ProjectID != nil {
		clauses = append(clauses, "project_id=?")
		args = append(args, *filter.ProjectID)
	}
	if filter.Completed != nil {
		clauses = append(clauses, "completed=?")
		args = append(args, *filter.Completed)
	}

	query := fmt.Sprintf(`%s
WHERE %s
ORDER BY completed ASC, CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, id DESC`,
		selectTodoColumns, strings.Join(clauses, " AND "))

	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) DetachProject(ctx context.Context, userID, projectID int64) error {
	_, err := r.db.exec(ctx, `
UPDATE todos
SET project_id=NULL, updated_at=?
WHERE user_id=? AND project_id=?`,
		time.Now().UTC(),
		userID,
		projectID,
	)
	if err != nil {
		return fmt.Errorf("detach project todos: %w", err)
	}
	return nil
}

func scanTodo(row scanner) (*domain.Todo, error) {
	var (
		todo        domain.Todo
		priority    string
		projectID   sql.NullInt64
		dueDate     sql.NullTime
		completedAt sql.NullTime
	)
	if err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&projectID,
		&todo.Title,
		&todo.Description,
		&priority,
		&todo.Completed,
		&dueDate,
		&completedAt,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	); err != nil {
		return nil, notFoundOr(err, "todo")
	}
	todo.Priority = domain.Priority(priority)
	todo.ProjectID = int64Ptr(projectID)
	todo.DueDate = timePtr(dueDate)
	todo.CompletedAt = timePtr(completedAt)
	return &todo, nil
}
