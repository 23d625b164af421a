package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskboard/internal/api"
	apiMiddleware "github.com/phrazzld/taskboard/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	limiter := apiMiddleware.NewRateLimiter(app.config.Server.RateLimitRPS, app.config.Server.RateLimitBurst)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.NewCORS(app.config.Server.CORSAllowedOrigins))

	swimlaneHandler := api.NewSwimlaneHandler(app.swimlaneService, app.boardService, app.logger)
	projectHandler := api.NewProjectHandler(app.projectService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	boardHandler := api.NewBoardHandler(app.boardService)
	healthHandler := api.NewHealthHandler(app.db, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Route("/swimlanes", func(r chi.Router) {
			r.Get("/", swimlaneHandler.ListSwimlanes)
			r.Post("/", swimlaneHandler.CreateSwimlane)
			r.Put("/{id}", swimlaneHandler.UpdateSwimlane)
			r.Delete("/{id}", swimlaneHandler.DeleteSwimlane)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projectHandler.CreateProject)
			r.Get("/{id}", projectHandler.GetProject)
			r.Put("/{id}", projectHandler.UpdateProject)
			r.Delete("/{id}", projectHandler.DeleteProject)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.CreateTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
			r.Post("/{id}/toggle", taskHandler.ToggleTask)
			r.Post("/{id}/expand", taskHandler.ExpandTask)
		})

		r.Get("/calendar", boardHandler.GetCalendar)
	})

	r.Get("/health", healthHandler.Health)

	return r
}
