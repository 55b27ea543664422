// Package service implements the domain operations on tasks and projects,
// independent of which entity store backs them.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/flowspace/flowspace/internal/domain"
)

// TaskService owns the task lifecycle: creation, field-wise updates with the
// status/completedAt coupling, deletion, and the click-to-advance ring.
type TaskService struct {
	tasks    domain.TaskRepository
	projects domain.ProjectRepository

	// now is swapped out in tests to pin completion timestamps.
	now func() time.Time
}

func NewTaskService(tasks domain.TaskRepository, projects domain.ProjectRepository) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		now:      time.Now,
	}
}

// Create validates and persists a new main task. The store assigns the ID.
func (s *TaskService) Create(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error) {
	in.ParentTaskID = nil

	t, err := domain.NewTask(in, s.now())
	if err != nil {
		return nil, fmt.Errorf("service.Create: %w", err)
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("service.Create: %w", err)
	}

	s.syncProjectCounts(ctx, t.ProjectID)

	return t, nil
}

// CreateSubtask persists a new subtask under parentTaskID. The parent must
// resolve to an existing main task; the subtask inherits the parent's
// project when none is supplied.
func (s *TaskService) CreateSubtask(ctx context.Context, parentTaskID int64, in domain.CreateTaskInput) (*domain.Task, error) {
	parent, err := s.tasks.GetByID(ctx, parentTaskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("service.CreateSubtask: %w: parent task %d does not exist", domain.ErrValidation, parentTaskID)
		}
		return nil, fmt.Errorf("service.CreateSubtask: resolve parent: %w", err)
	}
	if parent.IsSubtask() {
		return nil, fmt.Errorf("service.CreateSubtask: %w: task %d is itself a subtask", domain.ErrValidation, parentTaskID)
	}

	if in.ProjectID == 0 {
		in.ProjectID = parent.ProjectID
	}
	in.ParentTaskID = &parentTaskID

	t, err := domain.NewTask(in, s.now())
	if err != nil {
		return nil, fmt.Errorf("service.CreateSubtask: %w", err)
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("service.CreateSubtask: %w", err)
	}

	return t, nil
}

// Update merges a patch onto the stored task. Transitioning into done stamps
// CompletedAt; transitioning out of done clears it; every other change
// leaves it untouched.
func (s *TaskService) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.Update: %w", err)
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, fmt.Errorf("service.Update: %w: unknown priority %q", domain.ErrValidation, *patch.Priority)
		}
		t.Priority = *patch.Priority
	}
	if patch.ProjectID != nil {
		t.ProjectID = *patch.ProjectID
	}
	if patch.ClearDueDate {
		t.DueDate = nil
	} else if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("service.Update: %w: unknown status %q", domain.ErrValidation, *patch.Status)
		}
		s.applyStatus(t, *patch.Status)
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("service.Update: %w", err)
	}

	s.syncProjectCounts(ctx, t.ProjectID)

	return t, nil
}

// UpdateStatus is a status-only update, used by the kanban drag controller.
func (s *TaskService) UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error) {
	return s.Update(ctx, id, domain.TaskPatch{Status: &status})
}

// AdvanceStatus moves the task one step forward along the fixed ring
// todo -> in-progress -> done -> todo.
func (s *TaskService) AdvanceStatus(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.AdvanceStatus: %w", err)
	}
	return s.UpdateStatus(ctx, id, t.Status.Next())
}

// Delete removes the task. Deleting a main task cascades to its subtasks so
// no orphaned subtask is left referencing a missing parent.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.Delete: %w", err)
	}

	if !t.IsSubtask() {
		subtasks, err := s.tasks.GetSubtasks(ctx, id)
		if err != nil {
			return fmt.Errorf("service.Delete: list subtasks: %w", err)
		}
		for _, sub := range subtasks {
			if err := s.tasks.Delete(ctx, sub.ID); err != nil {
				return fmt.Errorf("service.Delete: cascade subtask %d: %w", sub.ID, err)
			}
		}
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.Delete: %w", err)
	}

	s.syncProjectCounts(ctx, t.ProjectID)

	return nil
}

// Get returns a single task by ID.
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.Get: %w", err)
	}
	return t, nil
}

// List returns the full task collection.
func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.List: %w", err)
	}
	return tasks, nil
}

// ListByProject returns all tasks belonging to a project.
func (s *TaskService) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ListByProject: %w", err)
	}
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Search returns tasks whose title or description contains the query,
// case-insensitively.
func (s *TaskService) Search(ctx context.Context, query string) ([]*domain.Task, error) {
	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Search: %w", err)
	}
	out := make([]*domain.Task, 0)
	for _, t := range tasks {
		if t.MatchesQuery(query) {
			out = append(out, t)
		}
	}
	return out, nil
}

// TaskWithSubtasks pairs a main task with its subtasks.
type TaskWithSubtasks struct {
	*domain.Task
	Subtasks []*domain.Task `json:"subtasks"`
}

// WithSubtasks returns the task plus its subtask children.
func (s *TaskService) WithSubtasks(ctx context.Context, id int64) (*TaskWithSubtasks, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.WithSubtasks: %w", err)
	}
	subtasks, err := s.tasks.GetSubtasks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.WithSubtasks: %w", err)
	}
	return &TaskWithSubtasks{Task: t, Subtasks: subtasks}, nil
}

// Subtasks returns the children of a parent task.
func (s *TaskService) Subtasks(ctx context.Context, parentTaskID int64) ([]*domain.Task, error) {
	subtasks, err := s.tasks.GetSubtasks(ctx, parentTaskID)
	if err != nil {
		return nil, fmt.Errorf("service.Subtasks: %w", err)
	}
	return subtasks, nil
}

// applyStatus sets the status and keeps CompletedAt coupled to it: non-nil
// iff the task is done.
func (s *TaskService) applyStatus(t *domain.Task, status domain.TaskStatus) {
	switch {
	case status == domain.TaskStatusDone && t.Status != domain.TaskStatusDone:
		completed := s.now()
		t.CompletedAt = &completed
	case status != domain.TaskStatusDone:
		t.CompletedAt = nil
	}
	t.Status = status
}

// syncProjectCounts refreshes the project's denormalized counters from the
// live task collection. Best-effort: failures are logged, never propagated,
// because displayed counts are always recomputed from the tasks themselves.
func (s *TaskService) syncProjectCounts(ctx context.Context, projectID int64) {
	if projectID == 0 {
		return
	}

	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		log.Warn().Err(err).Int64("project_id", projectID).Msg("project count sync: list tasks")
		return
	}

	var total, done int
	for _, t := range tasks {
		if t.IsSubtask() || t.ProjectID != projectID {
			continue
		}
		total++
		if t.IsDone() {
			done++
		}
	}

	if err := s.projects.UpdateTaskCounts(ctx, projectID, total, done); err != nil {
		log.Warn().Err(err).Int64("project_id", projectID).Msg("project count sync: update")
	}
}
