package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowspace/flowspace/internal/domain"
)

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

const projectColumns = `id, name, color, task_count, completed_count, created_at`

func (r *ProjectRepo) GetAll(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("projectRepo.GetAll: %w", err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &p.TaskCount, &p.CompletedCount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("projectRepo.GetAll: scan: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("projectRepo.GetAll: rows: %w", err)
	}

	return projects, nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project

	err := r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Color, &p.TaskCount, &p.CompletedCount, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("projectRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("projectRepo.GetByID: %w", err)
	}

	return &p, nil
}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO projects (name, color, task_count, completed_count, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.Name, p.Color, p.TaskCount, p.CompletedCount, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("projectRepo.Create: %w", err)
	}

	return nil
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET name = $1, color = $2 WHERE id = $3`,
		p.Name, p.Color, p.ID,
	)
	if err != nil {
		return fmt.Errorf("projectRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("projectRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM projects WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("projectRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("projectRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ProjectRepo) UpdateTaskCounts(ctx context.Context, id int64, taskCount, completedCount int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET task_count = $1, completed_count = $2 WHERE id = $3`,
		taskCount, completedCount, id,
	)
	if err != nil {
		return fmt.Errorf("projectRepo.UpdateTaskCounts: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("projectRepo.UpdateTaskCounts: %w", domain.ErrNotFound)
	}

	return nil
}
