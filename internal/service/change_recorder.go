package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/store"
)

// ChangeRecorder writes one audit entry per task field an update actually
// changed. It must be called with stores bound to the transaction that
// performed the update.
type ChangeRecorder struct {
	now    func() time.Time
	logger *slog.Logger
}

// NewChangeRecorder creates a ChangeRecorder. A nil now selects time.Now.
func NewChangeRecorder(now func() time.Time, logger *slog.Logger) *ChangeRecorder {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ChangeRecorder{
		now:    now,
		logger: logger.With(slog.String("component", "change_recorder")),
	}
}

// Record compares old and updated on the fields supplied in u and appends
// the differences to logs, all stamped with the same time. It returns the
// recorded changes.
func (r *ChangeRecorder) Record(
	ctx context.Context,
	logs store.TaskLogStore,
	old, updated domain.Task,
	u domain.TaskUpdate,
	actor uuid.UUID,
) ([]domain.TaskChange, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	changes := domain.DiffTask(old, updated, u, actor, r.now().UTC())
	if len(changes) == 0 {
		log.Debug("update changed no audited field", slog.String("task_id", old.ID.String()))
		return nil, nil
	}

	if err := logs.Append(ctx, changes); err != nil {
		return nil, err
	}

	fields := make([]string, len(changes))
	for i, c := range changes {
		fields[i] = c.FieldChanged
	}
	log.Debug("task changes recorded",
		slog.String("task_id", old.ID.String()),
		slog.Any("fields", fields))
	return changes, nil
}
