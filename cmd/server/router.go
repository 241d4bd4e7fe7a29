package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/akssingh0102/task-management/internal/api"
	apiMiddleware "github.com/akssingh0102/task-management/internal/api/middleware"
	"github.com/akssingh0102/task-management/internal/service"
	"github.com/akssingh0102/task-management/internal/service/auth"
)

type routerDeps struct {
	logger      *slog.Logger
	db          api.Pinger
	credentials auth.CredentialService
	users       service.UserService
	tasks       service.TaskService
	projects    service.ProjectService
}

// newRouter mounts the public auth and health routes and the
// authenticated /api group.
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(deps.logger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	authHandler := api.NewAuthHandler(deps.users, deps.logger)
	taskHandler := api.NewTaskHandler(deps.tasks, deps.projects, deps.logger)
	projectHandler := api.NewProjectHandler(deps.projects)
	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.credentials)

	r.Get("/health", api.Health(deps.db))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Put("/login", authHandler.Login)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.CreateTask)
			r.Get("/query", taskHandler.QueryTasks)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Get("/{id}/logs", taskHandler.ListTaskLogs)
			r.Post("/{id}/comments", taskHandler.AddComment)
		})

		r.Post("/projects", projectHandler.CreateProject)
		r.Get("/notifications", projectHandler.ListNotifications)
	})

	return r
}
