package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/flowspace/flowspace/internal/views"
)

type GetBoardInput struct {
	Query     string `query:"q" doc:"Search in title and description"`
	ProjectID int64  `query:"projectId" doc:"Filter to one project (0 = all)"`
}

type Board struct {
	Columns views.StatusGroups `json:"columns"`
	Total   int                `json:"total"`
}

type GetBoardOutput struct {
	Body *Board
}

func RegisterBoardRoutes(api huma.API, tasks TaskOperations) {
	huma.Register(api, huma.Operation{
		OperationID: "get-board",
		Method:      http.MethodGet,
		Path:        "/board",
		Summary:     "Get the kanban board",
		Tags:        []string{"Board"},
	}, func(ctx context.Context, input *GetBoardInput) (*GetBoardOutput, error) {
		list, err := tasks.List(ctx)
		if err != nil {
			return nil, apiError(err, "load board")
		}

		main := views.MainTasks(list)
		filtered := views.Filter(main, input.Query, input.ProjectID)
		groups := views.GroupByStatus(filtered)

		return &GetBoardOutput{Body: &Board{
			Columns: groups,
			Total:   len(filtered),
		}}, nil
	})
}
