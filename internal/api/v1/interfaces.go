package v1

import (
	"context"

	"github.com/flowspace/flowspace/internal/domain"
	"github.com/flowspace/flowspace/internal/service"
)

// TaskOperations abstracts the task service for handler testing.
// *service.TaskService satisfies this interface.
type TaskOperations interface {
	Create(ctx context.Context, in domain.CreateTaskInput) (*domain.Task, error)
	CreateSubtask(ctx context.Context, parentTaskID int64, in domain.CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error)
	AdvanceStatus(ctx context.Context, id int64) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error)
	Search(ctx context.Context, query string) ([]*domain.Task, error)
	WithSubtasks(ctx context.Context, id int64) (*service.TaskWithSubtasks, error)
	Subtasks(ctx context.Context, parentTaskID int64) ([]*domain.Task, error)
}

// ProjectOperations abstracts the project service for handler testing.
// *service.ProjectService satisfies this interface.
type ProjectOperations interface {
	Create(ctx context.Context, name, color string) (*domain.Project, error)
	Update(ctx context.Context, id int64, patch service.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

// EventPublisher pushes board change events to live clients. A nil publisher
// disables events without affecting the operation outcome.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}
