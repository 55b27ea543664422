package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/flowspace/flowspace/internal/domain"
	"github.com/flowspace/flowspace/internal/service"
	"github.com/flowspace/flowspace/internal/views"
)

type CreateProjectInput struct {
	Body struct {
		Name  string `json:"name" minLength:"1" maxLength:"255" doc:"Project name"`
		Color string `json:"color,omitempty" doc:"Display color"`
	}
}

type ProjectOutput struct {
	Body *domain.Project
}

type ListProjectsInput struct{}

type ListProjectsOutput struct {
	Body []*domain.Project
}

type GetProjectInput struct {
	ID int64 `path:"id" doc:"Project ID"`
}

type UpdateProjectInput struct {
	ID   int64 `path:"id" doc:"Project ID"`
	Body struct {
		Name  *string `json:"name,omitempty" maxLength:"255" doc:"Project name"`
		Color *string `json:"color,omitempty" doc:"Display color"`
	}
}

type DeleteProjectInput struct {
	ID int64 `path:"id" doc:"Project ID"`
}

type ProjectProgressOutput struct {
	Body []views.ProjectSummary
}

func RegisterProjectRoutes(api huma.API, projects ProjectOperations, tasks TaskOperations) {
	huma.Register(api, huma.Operation{
		OperationID: "create-project",
		Method:      http.MethodPost,
		Path:        "/projects",
		Summary:     "Create a new project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *CreateProjectInput) (*ProjectOutput, error) {
		p, err := projects.Create(ctx, input.Body.Name, input.Body.Color)
		if err != nil {
			return nil, apiError(err, "create project")
		}

		return &ProjectOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "List projects",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, _ *ListProjectsInput) (*ListProjectsOutput, error) {
		list, err := projects.List(ctx)
		if err != nil {
			return nil, apiError(err, "list projects")
		}

		return &ListProjectsOutput{Body: list}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "project-progress",
		Method:      http.MethodGet,
		Path:        "/projects/progress",
		Summary:     "List projects with live completion progress",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, _ *ListProjectsInput) (*ProjectProgressOutput, error) {
		list, err := projects.List(ctx)
		if err != nil {
			return nil, apiError(err, "list projects")
		}
		taskList, err := tasks.List(ctx)
		if err != nil {
			return nil, apiError(err, "list tasks")
		}

		return &ProjectProgressOutput{Body: views.ProjectProgress(list, taskList)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-project",
		Method:      http.MethodGet,
		Path:        "/projects/{id}",
		Summary:     "Get a project by ID",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *GetProjectInput) (*ProjectOutput, error) {
		p, err := projects.Get(ctx, input.ID)
		if err != nil {
			return nil, apiError(err, "get project")
		}

		return &ProjectOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-project",
		Method:      http.MethodPut,
		Path:        "/projects/{id}",
		Summary:     "Update a project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *UpdateProjectInput) (*ProjectOutput, error) {
		p, err := projects.Update(ctx, input.ID, service.ProjectPatch{
			Name:  input.Body.Name,
			Color: input.Body.Color,
		})
		if err != nil {
			return nil, apiError(err, "update project")
		}

		return &ProjectOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-project",
		Method:      http.MethodDelete,
		Path:        "/projects/{id}",
		Summary:     "Delete a project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *DeleteProjectInput) (*struct{}, error) {
		if err := projects.Delete(ctx, input.ID); err != nil {
			return nil, apiError(err, "delete project")
		}

		return nil, nil
	})
}
