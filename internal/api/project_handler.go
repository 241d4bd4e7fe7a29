package api

import (
	"net/http"

	"github.com/akssingh0102/task-management/internal/api/shared"
	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/service"
)

// ProjectHandler serves projects and the caller's notification inbox.
type ProjectHandler struct {
	projects service.ProjectService
}

func NewProjectHandler(projects service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// CreateProject handles POST /api/projects. The caller becomes the owner.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateProjectRequest
	if !decodeAndValidate(w, r, &req, nil) {
		return
	}

	project, err := h.projects.CreateProject(r.Context(), userID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create project")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, project)
}

// ListNotifications handles GET /api/notifications.
func (h *ProjectHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	list, err := h.projects.ListNotifications(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load notifications")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, list)
}
