package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus represents where a task is in its lifecycle.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskPriority ranks tasks.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid reports whether p is a known priority.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work that belongs to a project and may be assigned to one user.
type Task struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	Title          string       `json:"title" db:"title"`
	Description    string       `json:"description" db:"description"`
	Status         TaskStatus   `json:"status" db:"status"`
	Priority       TaskPriority `json:"priority" db:"priority"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	DueDate        *time.Time   `json:"due_date,omitempty" db:"due_date"`
	ProjectID      uuid.UUID    `json:"project_id" db:"project_id"`
	AssignedUserID *uuid.UUID   `json:"assigned_user_id,omitempty" db:"assigned_user_id"`
}

// TaskView is a task enriched with its project and assignee names, as
// returned by filtered queries. Both names are nil when the join finds no row.
type TaskView struct {
	Task
	ProjectName      *string `json:"project_name" db:"project_name"`
	AssignedUserName *string `json:"assigned_user_name" db:"assigned_user_name"`
}

// NewTask creates a Task with a fresh ID. An empty status defaults to pending.
func NewTask(
	title, description string,
	status TaskStatus,
	priority TaskPriority,
	dueDate *time.Time,
	projectID uuid.UUID,
	assignedUserID *uuid.UUID,
) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	task := &Task{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(title),
		Description:    description,
		Status:         status,
		Priority:       priority,
		CreatedAt:      time.Now().UTC(),
		DueDate:        dueDate,
		ProjectID:      projectID,
		AssignedUserID: assignedUserID,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if t.Title == "" {
		return NewValidationError("title", "cannot be empty", nil)
	}
	if utf8.RuneCountInString(t.Title) > MaxNameLength {
		return NewValidationError("title", "must not exceed 255 characters", nil)
	}
	if !t.Status.IsValid() {
		return NewValidationError("status", "must be one of pending, in_progress, completed", nil)
	}
	if !t.Priority.IsValid() {
		return NewValidationError("priority", "must be one of low, medium, high", nil)
	}
	if t.ProjectID == uuid.Nil {
		return NewValidationError("project_id", "cannot be empty", ErrInvalidID)
	}
	if t.AssignedUserID != nil && *t.AssignedUserID == uuid.Nil {
		return NewValidationError("assigned_user_id", "cannot be empty", ErrInvalidID)
	}
	return nil
}
