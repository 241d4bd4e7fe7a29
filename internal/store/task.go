package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/query"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create inserts a task. Referenced project and user must exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update writes the supplied allow-listed fields and returns the stored row.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)

	// Search runs a statement rendered by the query package.
	Search(ctx context.Context, stmt query.Statement) ([]domain.TaskView, error)

	// ListDueBetween returns tasks not yet completed whose due date falls in
	// [from, to], ordered by due date.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.Task, error)

	WithTx(tx *sql.Tx) TaskStore
}

// TaskLogStore persists the append-only task audit log. Entries are never
// modified or removed.
type TaskLogStore interface {
	// Append inserts every change in order.
	Append(ctx context.Context, changes []domain.TaskChange) error

	// ListByTask returns a task's changes, newest first.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.TaskChange, error)

	WithTx(tx *sql.Tx) TaskLogStore
}

// NotificationStore persists notifications.
type NotificationStore interface {
	// Create inserts a notification. A foreign key violation is reported as
	// ErrInvalidEntity; connection failures wrap ErrTransient.
	Create(ctx context.Context, n *domain.Notification) error

	// ListByUser returns a user's notifications, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
}
