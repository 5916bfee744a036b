package sqlstore

import (
	"context"
	"fmt"
	"time"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS todo_projects (
	id {{pk}},
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	created_at {{time}} NOT NULL,
	updated_at {{time}} NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todo_projects_user_id ON todo_projects(user_id);
`

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) repository.ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Init(ctx context.Context) error {
	if err := r.db.createSchema(ctx, createProjectsTable); err != nil {
		return fmt.Errorf("create todo_projects table: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.TodoProject) (int64, error) {
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	id, err := r.db.insert(ctx, `
INSERT INTO todo_projects (user_id, name, color, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		project.UserID,
		project.Name,
		project.Color,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	project.ID = id
	return id, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.TodoProject) error {
	project.UpdatedAt = time.Now().UTC()
	err := r.db.execAffectingOne(ctx, `
UPDATE todo_projects
SET name=?, color=?, updated_at=?
WHERE id=? AND user_id=?`,
		project.Name,
		project.Color,
		project.UpdatedAt,
		project.ID,
		project.UserID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, userID, id int64) error {
	if err := r.db.execAffectingOne(ctx, `DELETE FROM todo_projects WHERE id=? AND user_id=?`, id, userID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Get(ctx context.Context, userID, id int64) (*domain.TodoProject, error) {
	row := r.db.queryRow(ctx, `
SELECT id, user_id, name, color, created_at, updated_at
FROM todo_projects
WHERE id=? AND user_id=?`, id, userID)
	return scanProject(row)
}

func (r *ProjectRepository) List(ctx context.Context, userID int64) ([]domain.TodoProject, error) {
	rows, err := r.db.query(ctx, `
SELECT id, user_id, name, color, created_at, updated_at
FROM todo_projects
WHERE user_id=?
ORDER BY name ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.TodoProject{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func scanProject(row scanner) (*domain.TodoProject, error) {
	var p domain.TodoProject
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Color, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, notFoundOr(err, "project")
	}
	return &p, nil
}
