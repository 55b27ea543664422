package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/flowspace/flowspace/internal/domain"
)

type TaskRepo struct {
	mu    sync.RWMutex
	tasks []*domain.Task
}

func NewTaskRepo() *TaskRepo {
	return &TaskRepo{tasks: make([]*domain.Task, 0)}
}

func (r *TaskRepo) GetAll(_ context.Context) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, cloneTask(t))
	}
	return out, nil
}

func (r *TaskRepo) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tasks {
		if t.ID == id {
			return cloneTask(t), nil
		}
	}
	return nil, fmt.Errorf("memory.TaskRepo.GetByID: task %d: %w", id, domain.ErrNotFound)
}

func (r *TaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Highest existing ID plus one; deleted IDs can be reused.
	var highest int64
	for _, existing := range r.tasks {
		if existing.ID > highest {
			highest = existing.ID
		}
	}
	t.ID = highest + 1

	r.tasks = append(r.tasks, cloneTask(t))
	return nil
}

func (r *TaskRepo) Update(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.tasks {
		if existing.ID == t.ID {
			r.tasks[i] = cloneTask(t)
			return nil
		}
	}
	return fmt.Errorf("memory.TaskRepo.Update: task %d: %w", t.ID, domain.ErrNotFound)
}

func (r *TaskRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.tasks {
		if existing.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("memory.TaskRepo.Delete: task %d: %w", id, domain.ErrNotFound)
}

func (r *TaskRepo) GetSubtasks(_ context.Context, parentTaskID int64) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Task, 0)
	for _, t := range r.tasks {
		if t.ParentTaskID != nil && *t.ParentTaskID == parentTaskID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *TaskRepo) GetMainTasks(_ context.Context) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Task, 0)
	for _, t := range r.tasks {
		if t.ParentTaskID == nil {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

// cloneTask copies the record so callers never share memory with the store.
func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	if t.ParentTaskID != nil {
		parent := *t.ParentTaskID
		c.ParentTaskID = &parent
	}
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		c.CompletedAt = &completed
	}
	return &c
}
