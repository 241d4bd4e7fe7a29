package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/akssingh0102/task-management/internal/api/shared"
	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/service"
	"github.com/akssingh0102/task-management/internal/service/auth"
	"github.com/akssingh0102/task-management/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("status", "bad", nil), http.StatusBadRequest},
		{"no fields to update", domain.TaskUpdate{}.Validate(), http.StatusBadRequest},
		{"duplicate email at registration", domain.NewValidationError("email", "user already exists", store.ErrEmailExists), http.StatusBadRequest},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusBadRequest},
		{"invalid entity", fmt.Errorf("create: %w", store.ErrInvalidEntity), http.StatusBadRequest},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"domain not found", domain.NewNotFoundError("project", uuid.NewString()), http.StatusNotFound},
		{"store not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"bare duplicate", store.ErrDuplicate, http.StatusConflict},
		{"wrapped in service error", service.NewServiceError("update_task", "failed", domain.NewNotFoundError("task", "x")), http.StatusNotFound},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
		{"transient", store.ErrTransient, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.TaskUpdate{}.Validate(), "no fields to update"},
		{domain.NewValidationError("status", "must be one of pending, in_progress, completed", nil), "status: must be one of pending, in_progress, completed"},
		{domain.NewNotFoundError("project", "42"), "Project not found"},
		{domain.NewNotFoundError("user", "42"), "User not found"},
		{service.ErrInvalidCredentials, "Invalid email or password"},
		{store.ErrTaskNotFound, "Task not found"},
		{auth.ErrExpiredToken, "Token expired"},
		{errors.New("pq: password authentication failed for user app"), "An unexpected error occurred"},
		{nil, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(CreateTaskRequest{Title: "x", Priority: "urgent", ProjectID: uuid.NewString()})
	assert.Equal(t, "Invalid priority: must be one of low, medium, high", SanitizeValidationError(err))

	err = shared.ValidateRequest(RegisterRequest{Name: "Al", Email: "al@example.com", Password: "123"})
	assert.Equal(t, "Invalid password: must be at least 6 characters", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/tasks", nil)

	HandleAPIError(w, r, errors.New(`INSERT INTO tasks failed: postgres://app:secret@db/tasks`), "Failed to create task")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to create task", errorMessage(t, w))
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestHandleAPIErrorKeepsSafeMessageForClientErrors(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/api/tasks/x", nil)

	HandleAPIError(w, r, domain.NewNotFoundError("task", "x"), "Failed to update task")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", errorMessage(t, w))
}
