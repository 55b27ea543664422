package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/flowspace/flowspace/internal/domain"
	"github.com/flowspace/flowspace/internal/views"
)

type GetDashboardInput struct {
	DeadlineLimit int `query:"deadlineLimit" doc:"Max upcoming deadlines to return (default 5)"`
}

// Dashboard is everything the overview page renders: aggregate stats,
// today's focus list, the next deadlines, and per-project progress.
type Dashboard struct {
	Stats             views.Stats            `json:"stats"`
	TodaysTasks       []*domain.Task         `json:"todaysTasks"`
	UpcomingDeadlines []*domain.Task         `json:"upcomingDeadlines"`
	ProjectProgress   []views.ProjectSummary `json:"projectProgress"`
}

type GetDashboardOutput struct {
	Body *Dashboard
}

func RegisterDashboardRoutes(api huma.API, tasks TaskOperations, projects ProjectOperations) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/dashboard",
		Summary:     "Get the dashboard overview",
		Tags:        []string{"Dashboard"},
	}, func(ctx context.Context, input *GetDashboardInput) (*GetDashboardOutput, error) {
		taskList, err := tasks.List(ctx)
		if err != nil {
			return nil, apiError(err, "load dashboard")
		}
		projectList, err := projects.List(ctx)
		if err != nil {
			return nil, apiError(err, "load dashboard")
		}

		// "Today" is recomputed from wall-clock time on every request,
		// never cached across a session boundary.
		now := time.Now()

		return &GetDashboardOutput{Body: &Dashboard{
			Stats:             views.DashboardStats(taskList, now),
			TodaysTasks:       views.DueToday(taskList, now),
			UpcomingDeadlines: views.UpcomingDeadlines(taskList, now, input.DeadlineLimit),
			ProjectProgress:   views.ProjectProgress(projectList, taskList),
		}}, nil
	})
}
