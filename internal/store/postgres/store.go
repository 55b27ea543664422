// Package postgres implements the entity store on PostgreSQL via pgx. It is
// interchangeable with the memory store; the domain layer only sees the
// repository interfaces.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flowspace/flowspace/internal/domain"
)

type Store struct {
	pool     *pgxpool.Pool
	tasks    *TaskRepo
	projects *ProjectRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w: %w", domain.ErrStoreUnavailable, err)
	}

	return &Store{
		pool:     pool,
		tasks:    NewTaskRepo(pool),
		projects: NewProjectRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Tasks() domain.TaskRepository       { return s.tasks }
func (s *Store) Projects() domain.ProjectRepository { return s.projects }
