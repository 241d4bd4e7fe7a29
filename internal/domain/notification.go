package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxMessageLength bounds the stored notification text in characters.
const MaxMessageLength = 255

// Notification is a durable message for one user about one task.
// Notifications are never modified after creation.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	TaskID    uuid.UUID `json:"task_id" db:"task_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewNotification creates a Notification with a fresh ID. Messages longer
// than MaxMessageLength are truncated.
func NewNotification(userID, taskID uuid.UUID, message string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, NewValidationError("user_id", "cannot be empty", ErrInvalidID)
	}
	if taskID == uuid.Nil {
		return nil, NewValidationError("task_id", "cannot be empty", ErrInvalidID)
	}
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		TaskID:    taskID,
		Message:   truncateRunes(message, MaxMessageLength),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// truncateRunes cuts s to at most n characters without splitting a
// multi-byte sequence.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// CreatedMessage is the notification text for a newly created task.
func CreatedMessage(status TaskStatus) string {
	return fmt.Sprintf("A new task has been created with status: %s.", status)
}

// UpdatedMessage is the notification text for an updated task.
func UpdatedMessage(status TaskStatus) string {
	return fmt.Sprintf("Task status has been updated to: %s.", status)
}

// DueTomorrowMessage is the reminder text produced by the due-date scan.
func DueTomorrowMessage(title string) string {
	return fmt.Sprintf("Reminder: The task \"%s\" is due tomorrow. Please complete it on time.", title)
}
