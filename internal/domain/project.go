package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Project groups tasks and is owned by a single user.
type Project struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewProject creates a Project with a fresh ID.
func NewProject(name string, ownerID uuid.UUID) (*Project, error) {
	p := &Project{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the Project has valid data.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if p.Name == "" {
		return NewValidationError("name", "cannot be empty", nil)
	}
	if utf8.RuneCountInString(p.Name) > MaxNameLength {
		return NewValidationError("name", "must be at most 255 characters", nil)
	}
	if p.OwnerID == uuid.Nil {
		return NewValidationError("owner_id", "cannot be empty", ErrInvalidID)
	}
	return nil
}

// Comment is free text attached to a task by a user.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TaskID    uuid.UUID `json:"task_id" db:"task_id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewComment creates a Comment with a fresh ID.
func NewComment(taskID, authorID uuid.UUID, content string) (*Comment, error) {
	c := &Comment{
		ID:        uuid.New(),
		TaskID:    taskID,
		AuthorID:  authorID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UTC(),
	}
	if c.TaskID == uuid.Nil {
		return nil, NewValidationError("task_id", "cannot be empty", ErrInvalidID)
	}
	if c.AuthorID == uuid.Nil {
		return nil, NewValidationError("author_id", "cannot be empty", ErrInvalidID)
	}
	if c.Content == "" {
		return nil, NewValidationError("content", "cannot be empty", nil)
	}
	return c, nil
}
