package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. user.HashedPassword must already be set.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail returns ErrUserNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Exists reports whether a user with the given ID is stored.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}

// ProjectStore defines the interface for project persistence.
type ProjectStore interface {
	// Create returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID returns ErrProjectNotFound if the project does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	WithTx(tx *sql.Tx) ProjectStore
}

// CommentStore defines the interface for comment persistence.
type CommentStore interface {
	Create(ctx context.Context, comment *domain.Comment) error
}
