package query

import (
	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
)

const (
	// MinKeywordLength is the shortest comment keyword accepted.
	MinKeywordLength = 3
	// MaxDueInDays is the furthest due-date horizon a search may ask for.
	MaxDueInDays = 36500
)

// Filter is a sparse set of task search criteria. A nil field is absent.
type Filter struct {
	ProjectID      *uuid.UUID
	AssignedUserID *uuid.UUID
	Status         *domain.TaskStatus
	Priority       *domain.TaskPriority
	DueInDays      *int
	CommentKeyword *string
	Limit          *int
	Offset         *int
}

// IsEmpty reports whether no criterion is present. Pagination fields count
// as criteria.
func (f Filter) IsEmpty() bool {
	return f.ProjectID == nil &&
		f.AssignedUserID == nil &&
		f.Status == nil &&
		f.Priority == nil &&
		f.DueInDays == nil &&
		f.CommentKeyword == nil &&
		f.Limit == nil &&
		f.Offset == nil
}

// Validate returns a *domain.ValidationError for an empty filter or for the
// first present field that violates its constraint.
func (f Filter) Validate() error {
	if f.IsEmpty() {
		return domain.NewValidationError("", "at least one query parameter is required", nil)
	}
	if f.ProjectID != nil && *f.ProjectID == uuid.Nil {
		return domain.NewValidationError("project_id", "must be a valid UUID", domain.ErrInvalidID)
	}
	if f.AssignedUserID != nil && *f.AssignedUserID == uuid.Nil {
		return domain.NewValidationError("assigned_user_id", "must be a valid UUID", domain.ErrInvalidID)
	}
	if f.Status != nil && !f.Status.IsValid() {
		return domain.NewValidationError("status", "must be one of pending, in_progress, completed", nil)
	}
	if f.Priority != nil && !f.Priority.IsValid() {
		return domain.NewValidationError("priority", "must be one of low, medium, high", nil)
	}
	if f.DueInDays != nil && (*f.DueInDays < 0 || *f.DueInDays > MaxDueInDays) {
		return domain.NewValidationError("due_in_days", "must be an integer between 0 and 36500", nil)
	}
	if f.CommentKeyword != nil && len([]rune(*f.CommentKeyword)) < MinKeywordLength {
		return domain.NewValidationError("comment_keyword", "must be at least 3 characters long", nil)
	}
	if f.Limit != nil && *f.Limit < 1 {
		return domain.NewValidationError("limit", "must be a positive integer", nil)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return domain.NewValidationError("offset", "must be a non-negative integer", nil)
	}
	return nil
}
