package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/flowspace/flowspace/internal/views"
)

type GetCalendarInput struct {
	Year  int `path:"year" minimum:"1970" maximum:"9999" doc:"Calendar year"`
	Month int `path:"month" minimum:"1" maximum:"12" doc:"Calendar month (1-12)"`
}

type Calendar struct {
	Year  int                 `json:"year"`
	Month int                 `json:"month"`
	Days  []views.CalendarDay `json:"days"`
}

type GetCalendarOutput struct {
	Body *Calendar
}

func RegisterCalendarRoutes(api huma.API, tasks TaskOperations) {
	huma.Register(api, huma.Operation{
		OperationID: "get-calendar",
		Method:      http.MethodGet,
		Path:        "/calendar/{year}/{month}",
		Summary:     "Get the month grid with per-day task buckets",
		Tags:        []string{"Calendar"},
	}, func(ctx context.Context, input *GetCalendarInput) (*GetCalendarOutput, error) {
		taskList, err := tasks.List(ctx)
		if err != nil {
			return nil, apiError(err, "load calendar")
		}

		days := views.MonthGrid(input.Year, time.Month(input.Month), taskList, time.Now())

		return &GetCalendarOutput{Body: &Calendar{
			Year:  input.Year,
			Month: input.Month,
			Days:  days,
		}}, nil
	})
}
