package api

import (
	"log/slog"
	"net/http"

	"github.com/akssingh0102/task-management/internal/api/shared"
	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/service"
)

// TaskHandler serves the task endpoints.
type TaskHandler struct {
	tasks    service.TaskService
	projects service.ProjectService
	logger   *slog.Logger
}

// NewTaskHandler creates a TaskHandler. projects backs the comment endpoint.
func NewTaskHandler(tasks service.TaskService, projects service.ProjectService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:    tasks,
		projects: projects,
		logger:   logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req, req.normalize) {
		return
	}
	in, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), userID, in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Info("task created", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req, req.normalize) {
		return
	}
	u, err := req.toUpdate()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), userID, taskID, u)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	log.Info("task updated", slog.String("task_id", task.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// QueryTasks handles GET /api/tasks/query.
func (h *TaskHandler) QueryTasks(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	f, err := parseTaskFilter(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	views, err := h.tasks.QueryTasks(r.Context(), f)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to query tasks")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("tasks queried", slog.Int("count", len(views)))
	shared.RespondWithJSON(w, r, http.StatusOK, views)
}

// ListTaskLogs handles GET /api/tasks/{id}/logs.
func (h *TaskHandler) ListTaskLogs(w http.ResponseWriter, r *http.Request) {
	_, taskID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	changes, err := h.tasks.ListTaskLogs(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load task history")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, changes)
}

// AddComment handles POST /api/tasks/{id}/comments.
func (h *TaskHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	var req AddCommentRequest
	if !decodeAndValidate(w, r, &req, nil) {
		return
	}

	comment, err := h.projects.AddComment(r.Context(), userID, taskID, req.Content)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add comment")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, comment)
}
