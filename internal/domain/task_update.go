package domain

import (
	"time"

	"github.com/google/uuid"
)

// Names of the fields a task update may modify. They double as the
// field_changed values in the audit log.
const (
	FieldStatus         = "status"
	FieldPriority       = "priority"
	FieldAssignedUserID = "assigned_user_id"
)

// TaskUpdate carries the allow-listed fields of an update request.
// A nil field was not supplied.
type TaskUpdate struct {
	Status         *TaskStatus
	Priority       *TaskPriority
	AssignedUserID *uuid.UUID
}

// IsEmpty reports whether no allow-listed field was supplied.
func (u TaskUpdate) IsEmpty() bool {
	return u.Status == nil && u.Priority == nil && u.AssignedUserID == nil
}

// Validate rejects empty updates and out-of-range values.
func (u TaskUpdate) Validate() error {
	if u.IsEmpty() {
		return NewValidationError("", ErrNoFieldsToUpdate.Error(), ErrNoFieldsToUpdate)
	}
	if u.Status != nil && !u.Status.IsValid() {
		return NewValidationError("status", "must be one of pending, in_progress, completed", nil)
	}
	if u.Priority != nil && !u.Priority.IsValid() {
		return NewValidationError("priority", "must be one of low, medium, high", nil)
	}
	if u.AssignedUserID != nil && *u.AssignedUserID == uuid.Nil {
		return NewValidationError("assigned_user_id", "cannot be empty", ErrInvalidID)
	}
	return nil
}

// ApplyTo returns a copy of t with the supplied fields overwritten.
func (u TaskUpdate) ApplyTo(t Task) Task {
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.AssignedUserID != nil {
		id := *u.AssignedUserID
		t.AssignedUserID = &id
	}
	return t
}

// TaskChange is one row of the append-only task audit log.
type TaskChange struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TaskID       uuid.UUID `json:"task_id" db:"task_id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	FieldChanged string    `json:"field_changed" db:"field_changed"`
	OldValue     *string   `json:"old_value" db:"old_value"`
	NewValue     *string   `json:"new_value" db:"new_value"`
	ChangeMadeAt time.Time `json:"change_made_at" db:"change_made_at"`
}

// DiffTask compares old and updated for every field supplied in u and returns
// one change per field whose value differs. Fields supplied with their
// current value produce nothing. All changes share the timestamp at.
func DiffTask(old, updated Task, u TaskUpdate, actor uuid.UUID, at time.Time) []TaskChange {
	var changes []TaskChange

	add := func(field string, before, after *string) {
		if equalOptional(before, after) {
			return
		}
		changes = append(changes, TaskChange{
			ID:           uuid.New(),
			TaskID:       old.ID,
			UserID:       actor,
			FieldChanged: field,
			OldValue:     before,
			NewValue:     after,
			ChangeMadeAt: at,
		})
	}

	if u.Status != nil {
		add(FieldStatus, stringPtr(string(old.Status)), stringPtr(string(updated.Status)))
	}
	if u.Priority != nil {
		add(FieldPriority, stringPtr(string(old.Priority)), stringPtr(string(updated.Priority)))
	}
	if u.AssignedUserID != nil {
		add(FieldAssignedUserID, uuidString(old.AssignedUserID), uuidString(updated.AssignedUserID))
	}

	return changes
}

func stringPtr(s string) *string {
	return &s
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	return stringPtr(id.String())
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
