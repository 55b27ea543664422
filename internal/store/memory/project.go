package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/flowspace/flowspace/internal/domain"
)

type ProjectRepo struct {
	mu       sync.RWMutex
	projects []*domain.Project
}

func NewProjectRepo() *ProjectRepo {
	return &ProjectRepo{projects: make([]*domain.Project, 0)}
}

func (r *ProjectRepo) GetAll(_ context.Context) ([]*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *ProjectRepo) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.projects {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("memory.ProjectRepo.GetByID: project %d: %w", id, domain.ErrNotFound)
}

func (r *ProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var highest int64
	for _, existing := range r.projects {
		if existing.ID > highest {
			highest = existing.ID
		}
	}
	p.ID = highest + 1

	clone := *p
	r.projects = append(r.projects, &clone)
	return nil
}

func (r *ProjectRepo) Update(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.projects {
		if existing.ID == p.ID {
			clone := *p
			r.projects[i] = &clone
			return nil
		}
	}
	return fmt.Errorf("memory.ProjectRepo.Update: project %d: %w", p.ID, domain.ErrNotFound)
}

func (r *ProjectRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.projects {
		if existing.ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("memory.ProjectRepo.Delete: project %d: %w", id, domain.ErrNotFound)
}

func (r *ProjectRepo) UpdateTaskCounts(_ context.Context, id int64, taskCount, completedCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.projects {
		if existing.ID == id {
			existing.TaskCount = taskCount
			existing.CompletedCount = completedCount
			return nil
		}
	}
	return fmt.Errorf("memory.ProjectRepo.UpdateTaskCounts: project %d: %w", id, domain.ErrNotFound)
}
