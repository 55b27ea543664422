package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/flowspace/flowspace/internal/api/v1"
	"github.com/flowspace/flowspace/internal/api/ws"
	"github.com/flowspace/flowspace/internal/service"
)

func registerAPIRoutes(api huma.API, tasks *service.TaskService, projects *service.ProjectService, hub *ws.Hub) {
	// A nil *ws.Hub must become a nil interface, not a typed nil.
	var events v1.EventPublisher
	if hub != nil {
		events = hub
	}

	v1.RegisterTaskRoutes(api, tasks, events)
	v1.RegisterProjectRoutes(api, projects, tasks)
	v1.RegisterBoardRoutes(api, tasks)
	v1.RegisterDashboardRoutes(api, tasks, projects)
	v1.RegisterCalendarRoutes(api, tasks)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/board/{projectID}", hub.ServeBoard)
}
