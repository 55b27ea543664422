package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// Statuses is the ordered set of kanban columns.
var Statuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// Next advances along the fixed ring todo -> in-progress -> done -> todo.
// Used by the single-click status toggle; explicit edits may move in any
// direction.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case TaskStatusTodo:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusDone
	case TaskStatusDone:
		return TaskStatusTodo
	default:
		return TaskStatusTodo
	}
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

type Task struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	ProjectID    int64        `json:"projectId"`
	DueDate      *time.Time   `json:"dueDate,omitempty"`
	ParentTaskID *int64       `json:"parentTaskId,omitempty"`
	CompletedAt  *time.Time   `json:"completedAt,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// IsSubtask reports whether the task belongs to a parent task. Subtasks are
// excluded from kanban columns and contribute to the parent's progress ring.
func (t *Task) IsSubtask() bool {
	return t.ParentTaskID != nil
}

func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}

// MatchesQuery reports whether the task title or description contains the
// query, case-insensitively. An empty query matches everything.
func (t *Task) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

type CreateTaskInput struct {
	Title        string
	Description  string
	Status       TaskStatus
	Priority     TaskPriority
	ProjectID    int64
	DueDate      *time.Time
	ParentTaskID *int64
}

// NewTask builds an unpersisted Task with validated required fields and
// defaults. The store assigns the ID on Create.
func NewTask(in CreateTaskInput, now time.Time) (*Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.ProjectID <= 0 {
		return nil, fmt.Errorf("%w: project id is required", ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = TaskStatusTodo
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}

	priority := in.Priority
	if priority == "" {
		priority = TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}

	t := &Task{
		Title:        in.Title,
		Description:  in.Description,
		Status:       status,
		Priority:     priority,
		ProjectID:    in.ProjectID,
		DueDate:      in.DueDate,
		ParentTaskID: in.ParentTaskID,
		CreatedAt:    now,
	}
	if t.Status == TaskStatusDone {
		completed := now
		t.CompletedAt = &completed
	}

	return t, nil
}

// TaskPatch is a field-wise merge onto an existing task. Nil fields are left
// untouched. ClearDueDate unschedules the task and wins over DueDate.
type TaskPatch struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Priority     *TaskPriority
	ProjectID    *int64
	DueDate      *time.Time
	ClearDueDate bool
}

type TaskRepository interface {
	GetAll(ctx context.Context) ([]*Task, error)
	GetByID(ctx context.Context, id int64) (*Task, error)
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id int64) error
	GetSubtasks(ctx context.Context, parentTaskID int64) ([]*Task, error)
	GetMainTasks(ctx context.Context) ([]*Task, error)
}
