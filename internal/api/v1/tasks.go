package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/flowspace/flowspace/internal/api/ws"
	"github.com/flowspace/flowspace/internal/domain"
	"github.com/flowspace/flowspace/internal/service"
	redisstore "github.com/flowspace/flowspace/internal/store/redis"
)

// taskForm is the create/edit payload shared by task and subtask creation.
// Project IDs arrive as strings from UI form inputs and are coerced to
// integers here, at the boundary.
type taskForm struct {
	Title       string     `json:"title" minLength:"1" maxLength:"500" doc:"Task title"`
	Description string     `json:"description,omitempty" doc:"Task description"`
	Status      string     `json:"status,omitempty" enum:"todo,in-progress,done" doc:"Initial status"`
	Priority    string     `json:"priority,omitempty" enum:"low,medium,high" doc:"Task priority"`
	ProjectID   string     `json:"projectId,omitempty" doc:"Owning project ID (string form)"`
	DueDate     *time.Time `json:"dueDate,omitempty" doc:"Due date; absent means unscheduled"`
}

func (f *taskForm) toInput() (domain.CreateTaskInput, error) {
	in := domain.CreateTaskInput{
		Title:       f.Title,
		Description: f.Description,
		Status:      domain.TaskStatus(f.Status),
		Priority:    domain.TaskPriority(f.Priority),
		DueDate:     f.DueDate,
	}
	if f.ProjectID != "" {
		id, err := strconv.ParseInt(f.ProjectID, 10, 64)
		if err != nil {
			return in, huma.Error400BadRequest("invalid projectId: " + f.ProjectID)
		}
		in.ProjectID = id
	}
	return in, nil
}

type CreateTaskInput struct {
	Body taskForm
}

type TaskOutput struct {
	Body *domain.Task
}

type ListTasksInput struct {
	ProjectID int64  `query:"projectId" doc:"Filter by project"`
	Query     string `query:"q" doc:"Search in title and description"`
}

type ListTasksOutput struct {
	Body []*domain.Task
}

type GetTaskInput struct {
	ID int64 `path:"id" doc:"Task ID"`
}

type TaskWithSubtasksOutput struct {
	Body *service.TaskWithSubtasks
}

type UpdateTaskInput struct {
	ID   int64 `path:"id" doc:"Task ID"`
	Body struct {
		Title       *string    `json:"title,omitempty" maxLength:"500" doc:"Task title"`
		Description *string    `json:"description,omitempty" doc:"Task description"`
		Status      *string    `json:"status,omitempty" enum:"todo,in-progress,done" doc:"Task status"`
		Priority    *string    `json:"priority,omitempty" enum:"low,medium,high" doc:"Task priority"`
		ProjectID   *string    `json:"projectId,omitempty" doc:"Owning project ID (string form)"`
		DueDate     *time.Time `json:"dueDate,omitempty" doc:"Due date"`
		// A *time.Time cannot tell an absent dueDate from an explicit
		// null, so clearing is its own field.
		ClearDueDate bool `json:"clearDueDate,omitempty" doc:"Remove the due date"`
	}
}

type MoveTaskInput struct {
	ID   int64 `path:"id" doc:"Task ID"`
	Body struct {
		Status string `json:"status" enum:"todo,in-progress,done" doc:"Target column"`
	}
}

type CreateSubtaskInput struct {
	ID   int64 `path:"id" doc:"Parent task ID"`
	Body taskForm
}

type DeleteTaskInput struct {
	ID int64 `path:"id" doc:"Task ID"`
}

func RegisterTaskRoutes(api huma.API, tasks TaskOperations, events EventPublisher) {
	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/tasks",
		Summary:     "Create a new task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*TaskOutput, error) {
		in, err := input.Body.toInput()
		if err != nil {
			return nil, err
		}

		t, err := tasks.Create(ctx, in)
		if err != nil {
			return nil, apiError(err, "create task")
		}

		publishBoardEvent(ctx, events, "task_created", t)

		return &TaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "List tasks",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error) {
		var (
			list []*domain.Task
			err  error
		)
		switch {
		case input.Query != "":
			list, err = tasks.Search(ctx, input.Query)
		case input.ProjectID != 0:
			list, err = tasks.ListByProject(ctx, input.ProjectID)
		default:
			list, err = tasks.List(ctx)
		}
		if err != nil {
			return nil, apiError(err, "list tasks")
		}

		return &ListTasksOutput{Body: list}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}",
		Summary:     "Get a task by ID",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*TaskOutput, error) {
		t, err := tasks.Get(ctx, input.ID)
		if err != nil {
			return nil, apiError(err, "get task")
		}

		return &TaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task-with-subtasks",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}/full",
		Summary:     "Get a task with its subtasks",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*TaskWithSubtasksOutput, error) {
		t, err := tasks.WithSubtasks(ctx, input.ID)
		if err != nil {
			return nil, apiError(err, "get task")
		}

		return &TaskWithSubtasksOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPut,
		Path:        "/tasks/{id}",
		Summary:     "Update a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateTaskInput) (*TaskOutput, error) {
		patch := domain.TaskPatch{
			Title:        input.Body.Title,
			Description:  input.Body.Description,
			DueDate:      input.Body.DueDate,
			ClearDueDate: input.Body.ClearDueDate,
		}
		if input.Body.Status != nil {
			status := domain.TaskStatus(*input.Body.Status)
			patch.Status = &status
		}
		if input.Body.Priority != nil {
			priority := domain.TaskPriority(*input.Body.Priority)
			patch.Priority = &priority
		}
		if input.Body.ProjectID != nil {
			id, err := strconv.ParseInt(*input.Body.ProjectID, 10, 64)
			if err != nil {
				return nil, huma.Error400BadRequest("invalid projectId: " + *input.Body.ProjectID)
			}
			patch.ProjectID = &id
		}

		t, err := tasks.Update(ctx, input.ID, patch)
		if err != nil {
			return nil, apiError(err, "update task")
		}

		publishBoardEvent(ctx, events, "task_updated", t)

		return &TaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{id}/status",
		Summary:     "Move a task to a kanban column",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *MoveTaskInput) (*TaskOutput, error) {
		current, err := tasks.Get(ctx, input.ID)
		if err != nil {
			return nil, apiError(err, "move task")
		}

		target := domain.TaskStatus(input.Body.Status)
		if current.Status == target {
			// Drop onto the task's own column is a no-op.
			return &TaskOutput{Body: current}, nil
		}

		t, err := tasks.UpdateStatus(ctx, input.ID, target)
		if err != nil {
			return nil, apiError(err, "move task")
		}

		publishBoardEvent(ctx, events, "task_moved", t)

		return &TaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "advance-task-status",
		Method:      http.MethodPost,
		Path:        "/tasks/{id}/advance",
		Summary:     "Advance a task one step along the status ring",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*TaskOutput, error) {
		t, err := tasks.AdvanceStatus(ctx, input.ID)
		if err != nil {
			return nil, apiError(err, "advance task")
		}

		publishBoardEvent(ctx, events, "task_moved", t)

		return &TaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-subtasks",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}/subtasks",
		Summary:     "List subtasks of a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*ListTasksOutput, error) {
		list, err := tasks.Subtasks(ctx, input.ID)
		if err != nil {
			return nil, apiError(err, "list subtasks")
		}

		return &ListTasksOutput{Body: list}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-subtask",
		Method:      http.MethodPost,
		Path:        "/tasks/{id}/subtasks",
		Summary:     "Create a subtask under a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateSubtaskInput) (*TaskOutput, error) {
		in, err := input.Body.toInput()
		if err != nil {
			return nil, err
		}

		t, err := tasks.CreateSubtask(ctx, input.ID, in)
		if err != nil {
			return nil, apiError(err, "create subtask")
		}

		publishBoardEvent(ctx, events, "task_created", t)

		return &TaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{id}",
		Summary:     "Delete a task and its subtasks",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *DeleteTaskInput) (*struct{}, error) {
		t, err := tasks.Get(ctx, input.ID)
		if err != nil {
			return nil, apiError(err, "delete task")
		}

		if err := tasks.Delete(ctx, input.ID); err != nil {
			return nil, apiError(err, "delete task")
		}

		publishBoardEvent(ctx, events, "task_deleted", t)

		return nil, nil
	})
}

// publishBoardEvent pushes a board change to live clients on both the
// project channel and the all-projects channel. Delivery is best-effort; the
// mutation has already been persisted.
func publishBoardEvent(ctx context.Context, events EventPublisher, eventType string, t *domain.Task) {
	if events == nil {
		return
	}

	payload, err := json.Marshal(ws.BoardEvent{
		Type:      eventType,
		TaskID:    t.ID,
		ProjectID: t.ProjectID,
		Data:      t,
	})
	if err != nil {
		log.Debug().Err(err).Msg("board event marshal")
		return
	}

	for _, channel := range []string{redisstore.BoardChannel(t.ProjectID), redisstore.BoardChannel(0)} {
		if err := events.Publish(ctx, channel, payload); err != nil {
			log.Debug().Err(err).Str("channel", channel).Msg("board event publish")
		}
	}
}
