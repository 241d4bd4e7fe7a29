package api

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/service"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest is the body of PUT /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func userResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// CreateTaskRequest is the body of POST /api/tasks. IDs are accepted with
// surrounding whitespace.
type CreateTaskRequest struct {
	Title          string     `json:"title" validate:"required,max=255"`
	Description    string     `json:"description"`
	Status         string     `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority       string     `json:"priority" validate:"required,oneof=low medium high"`
	DueDate        *time.Time `json:"due_date"`
	ProjectID      string     `json:"project_id" validate:"required,uuid"`
	AssignedUserID *string    `json:"assigned_user_id" validate:"omitnil,uuid"`
}

func (r *CreateTaskRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.ProjectID = strings.TrimSpace(r.ProjectID)
	r.AssignedUserID = trimOptional(r.AssignedUserID)
}

func (r CreateTaskRequest) toInput() (service.CreateTaskInput, error) {
	projectID, err := parseID("project_id", r.ProjectID)
	if err != nil {
		return service.CreateTaskInput{}, err
	}
	assignee, err := parseOptionalID("assigned_user_id", r.AssignedUserID)
	if err != nil {
		return service.CreateTaskInput{}, err
	}
	return service.CreateTaskInput{
		Title:          r.Title,
		Description:    r.Description,
		Status:         domain.TaskStatus(r.Status),
		Priority:       domain.TaskPriority(r.Priority),
		DueDate:        r.DueDate,
		ProjectID:      projectID,
		AssignedUserID: assignee,
	}, nil
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}. Only these fields
// can change; any other field in the body is ignored.
type UpdateTaskRequest struct {
	Status         *string `json:"status" validate:"omitnil,oneof=pending in_progress completed"`
	Priority       *string `json:"priority" validate:"omitnil,oneof=low medium high"`
	AssignedUserID *string `json:"assigned_user_id" validate:"omitnil,uuid"`
}

func (r *UpdateTaskRequest) normalize() {
	r.AssignedUserID = trimOptional(r.AssignedUserID)
}

func (r UpdateTaskRequest) toUpdate() (domain.TaskUpdate, error) {
	var u domain.TaskUpdate
	if r.Status != nil {
		s := domain.TaskStatus(*r.Status)
		u.Status = &s
	}
	if r.Priority != nil {
		p := domain.TaskPriority(*r.Priority)
		u.Priority = &p
	}
	assignee, err := parseOptionalID("assigned_user_id", r.AssignedUserID)
	if err != nil {
		return domain.TaskUpdate{}, err
	}
	u.AssignedUserID = assignee
	return u, nil
}

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// AddCommentRequest is the body of POST /api/tasks/{id}/comments.
type AddCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
