package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/store"
)

// PostgresNotificationStore implements store.NotificationStore on PostgreSQL.
type PostgresNotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a notification store on db.
func NewPostgresNotificationStore(db store.DBTX, logger *slog.Logger) *PostgresNotificationStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresNotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// Create implements store.NotificationStore.Create.
func (s *PostgresNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, task_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.UserID, n.TaskID, n.Message, n.CreatedAt)
	if err != nil {
		log.Warn("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("user_id", n.UserID.String()),
			slog.String("task_id", n.TaskID.String()))
		return MapError(err)
	}

	log.Info("notification created",
		slog.String("notification_id", n.ID.String()),
		slog.String("user_id", n.UserID.String()),
		slog.String("task_id", n.TaskID.String()))
	return nil
}

// ListByUser implements store.NotificationStore.ListByUser.
func (s *PostgresNotificationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, task_id, message, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	notifications := []domain.Notification{}
	if err := sqlx.StructScan(rows, &notifications); err != nil {
		return nil, MapError(err)
	}
	return notifications, nil
}
