package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/store"
)

// PostgresTaskLogStore implements store.TaskLogStore on the task_logs table.
type PostgresTaskLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskLogStore creates an audit log store on db.
func NewPostgresTaskLogStore(db store.DBTX, logger *slog.Logger) *PostgresTaskLogStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_log_store")),
	}
}

var _ store.TaskLogStore = (*PostgresTaskLogStore)(nil)

// Append implements store.TaskLogStore.Append with one insert per change.
func (s *PostgresTaskLogStore) Append(ctx context.Context, changes []domain.TaskChange) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, c := range changes {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO task_logs (id, task_id, user_id, field_changed, old_value, new_value, change_made_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, c.TaskID, c.UserID, c.FieldChanged, c.OldValue, c.NewValue, c.ChangeMadeAt)
		if err != nil {
			log.Error("failed to append task change",
				slog.String("error", err.Error()),
				slog.String("task_id", c.TaskID.String()),
				slog.String("field", c.FieldChanged))
			return MapError(err)
		}
	}

	log.Debug("task changes recorded", slog.Int("count", len(changes)))
	return nil
}

// ListByTask implements store.TaskLogStore.ListByTask.
func (s *PostgresTaskLogStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.TaskChange, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task_id, user_id, field_changed, old_value, new_value, change_made_at
		FROM task_logs
		WHERE task_id = $1
		ORDER BY change_made_at DESC, field_changed`, taskID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	changes := []domain.TaskChange{}
	if err := sqlx.StructScan(rows, &changes); err != nil {
		return nil, MapError(err)
	}
	return changes, nil
}

// WithTx implements store.TaskLogStore.WithTx.
func (s *PostgresTaskLogStore) WithTx(tx *sql.Tx) store.TaskLogStore {
	return &PostgresTaskLogStore{db: tx, logger: s.logger}
}
