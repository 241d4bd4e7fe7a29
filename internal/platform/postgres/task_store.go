package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/query"
	"github.com/akssingh0102/task-management/internal/store"
)

const taskColumns = `id, title, description, status, priority, created_at, due_date, project_id, assigned_user_id`

// PostgresTaskStore implements store.TaskStore on PostgreSQL.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a task store on db.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.CreatedAt, &t.DueDate, &t.ProjectID, &t.AssignedUserID,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create implements store.TaskStore.Create.
func (s *PostgresTaskStore) Create(ctx context.Context, t *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority),
		t.CreatedAt, t.DueDate, t.ProjectID, t.AssignedUserID)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", t.ID.String()),
			slog.String("project_id", t.ProjectID.String()))
		return MapError(err)
	}

	log.Info("task created",
		slog.String("task_id", t.ID.String()),
		slog.String("status", string(t.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}
	return t, nil
}

// Update implements store.TaskStore.Update. Only supplied fields appear in
// the SET clause; the full row comes back through RETURNING.
func (s *PostgresTaskStore) Update(ctx context.Context, id uuid.UUID, u domain.TaskUpdate) (*domain.Task, error) {
	if u.IsEmpty() {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrNoFieldsToUpdate)
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if u.Status != nil {
		set("status", string(*u.Status))
	}
	if u.Priority != nil {
		set("priority", string(*u.Priority))
	}
	if u.AssignedUserID != nil {
		set("assigned_user_id", *u.AssignedUserID)
	}
	args = append(args, id)

	stmt := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d RETURNING `+taskColumns,
		strings.Join(sets, ", "), len(args))

	t, err := scanTask(s.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}
	return t, nil
}

// Search implements store.TaskStore.Search.
func (s *PostgresTaskStore) Search(ctx context.Context, stmt query.Statement) ([]domain.TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		log.Error("task search failed", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	views := []domain.TaskView{}
	if err := sqlx.StructScan(rows, &views); err != nil {
		log.Error("failed to scan task rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("task search completed", slog.Int("rows", len(views)))
	return views, nil
}

// ListDueBetween implements store.TaskStore.ListDueBetween.
func (s *PostgresTaskStore) ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE due_date BETWEEN $1 AND $2
		  AND status <> $3
		ORDER BY due_date`,
		from, to, string(domain.TaskStatusCompleted))
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []domain.Task
	if err := sqlx.StructScan(rows, &tasks); err != nil {
		return nil, MapError(err)
	}
	return tasks, nil
}

// WithTx implements store.TaskStore.WithTx.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}
