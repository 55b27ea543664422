package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowspace/flowspace/internal/domain"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

const taskColumns = `id, title, description, status, priority, project_id, due_date, parent_task_id, completed_at, created_at`

func (r *TaskRepo) GetAll(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GetAll: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.GetAll")
}

func (r *TaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var (
		t      domain.Task
		status string
	)

	err := r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`,
		id,
	).Scan(
		&t.ID, &t.Title, &t.Description, &status, &t.Priority,
		&t.ProjectID, &t.DueDate, &t.ParentTaskID, &t.CompletedAt, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", err)
	}

	t.Status = statusFromWire(status)
	return &t, nil
}

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tasks (title, description, status, priority, project_id, due_date, parent_task_id, completed_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		t.Title, t.Description, statusToWire(t.Status), t.Priority,
		t.ProjectID, t.DueDate, t.ParentTaskID, t.CompletedAt, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("taskRepo.Create: %w", err)
	}

	return nil
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, status = $3, priority = $4,
		        project_id = $5, due_date = $6, parent_task_id = $7, completed_at = $8
		 WHERE id = $9`,
		t.Title, t.Description, statusToWire(t.Status), t.Priority,
		t.ProjectID, t.DueDate, t.ParentTaskID, t.CompletedAt,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) GetSubtasks(ctx context.Context, parentTaskID int64) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE parent_task_id = $1 ORDER BY created_at, id`,
		parentTaskID,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GetSubtasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.GetSubtasks")
}

func (r *TaskRepo) GetMainTasks(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE parent_task_id IS NULL ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GetMainTasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.GetMainTasks")
}

func scanTasks(rows pgx.Rows, caller string) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var (
			t      domain.Task
			status string
		)
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &status, &t.Priority,
			&t.ProjectID, &t.DueDate, &t.ParentTaskID, &t.CompletedAt, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		t.Status = statusFromWire(status)
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return tasks, nil
}
