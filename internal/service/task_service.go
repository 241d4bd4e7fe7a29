package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/events"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/query"
	"github.com/akssingh0102/task-management/internal/store"
)

// CreateTaskInput carries the fields of a new task. An empty Status means
// pending.
type CreateTaskInput struct {
	Title          string
	Description    string
	Status         domain.TaskStatus
	Priority       domain.TaskPriority
	DueDate        *time.Time
	ProjectID      uuid.UUID
	AssignedUserID *uuid.UUID
}

// TaskService provides task operations.
type TaskService interface {
	// CreateTask stores a new task and publishes task_created.
	CreateTask(ctx context.Context, actorID uuid.UUID, in CreateTaskInput) (*domain.Task, error)

	// UpdateTask applies the allow-listed fields in u, records one audit
	// entry per changed field and publishes task_updated after commit.
	UpdateTask(ctx context.Context, actorID, taskID uuid.UUID, u domain.TaskUpdate) (*domain.Task, error)

	// QueryTasks returns the tasks matching f, newest first.
	QueryTasks(ctx context.Context, f query.Filter) ([]domain.TaskView, error)

	// ListTaskLogs returns a task's audit history, newest first.
	ListTaskLogs(ctx context.Context, taskID uuid.UUID) ([]domain.TaskChange, error)
}

// TaskServiceDeps are the collaborators of the task service.
type TaskServiceDeps struct {
	DB        *sql.DB
	Tasks     store.TaskStore
	Logs      store.TaskLogStore
	Projects  store.ProjectStore
	Users     store.UserStore
	Publisher events.ChangePublisher
	Recorder  *ChangeRecorder
}

type taskServiceImpl struct {
	db        *sql.DB
	tasks     store.TaskStore
	logs      store.TaskLogStore
	projects  store.ProjectStore
	users     store.UserStore
	publisher events.ChangePublisher
	recorder  *ChangeRecorder
	logger    *slog.Logger
}

// NewTaskService creates a TaskService. It returns an error if a required
// dependency is missing.
func NewTaskService(deps TaskServiceDeps, logger *slog.Logger) (TaskService, error) {
	switch {
	case deps.DB == nil:
		return nil, domain.NewValidationError("db", "cannot be nil", nil)
	case deps.Tasks == nil:
		return nil, domain.NewValidationError("tasks", "cannot be nil", nil)
	case deps.Logs == nil:
		return nil, domain.NewValidationError("logs", "cannot be nil", nil)
	case deps.Projects == nil:
		return nil, domain.NewValidationError("projects", "cannot be nil", nil)
	case deps.Users == nil:
		return nil, domain.NewValidationError("users", "cannot be nil", nil)
	case deps.Publisher == nil:
		return nil, domain.NewValidationError("publisher", "cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	recorder := deps.Recorder
	if recorder == nil {
		recorder = NewChangeRecorder(nil, logger)
	}
	return &taskServiceImpl{
		db:        deps.DB,
		tasks:     deps.Tasks,
		logs:      deps.Logs,
		projects:  deps.Projects,
		users:     deps.Users,
		publisher: deps.Publisher,
		recorder:  recorder,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask.
func (s *taskServiceImpl) CreateTask(ctx context.Context, actorID uuid.UUID, in CreateTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(in.Title, in.Description, in.Status, in.Priority,
		in.DueDate, in.ProjectID, in.AssignedUserID)
	if err != nil {
		return nil, err
	}

	if err := s.requireProject(ctx, task.ProjectID); err != nil {
		return nil, err
	}
	if task.AssignedUserID != nil {
		if err := s.requireUser(ctx, *task.AssignedUserID); err != nil {
			return nil, err
		}
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("project_id", task.ProjectID.String()))
		return nil, NewServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("actor_id", actorID.String()),
		slog.String("status", string(task.Status)))

	s.publisher.Publish(ctx, events.TaskCreated(task))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	actorID, taskID uuid.UUID,
	u domain.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("task_id", taskID.String()))

	if err := u.Validate(); err != nil {
		return nil, err
	}
	if actorID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if taskID == uuid.Nil {
		return nil, domain.NewValidationError("id", "cannot be empty", domain.ErrInvalidID)
	}
	if u.AssignedUserID != nil {
		if err := s.requireUser(ctx, *u.AssignedUserID); err != nil {
			return nil, err
		}
	}

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txTasks := s.tasks.WithTx(tx)

		old, err := txTasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}

		updated, err = txTasks.Update(ctx, taskID, u)
		if err != nil {
			return err
		}

		_, err = s.recorder.Record(ctx, s.logs.WithTx(tx), *old, *updated, u, actorID)
		return err
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("task to update not found")
			return nil, domain.NewNotFoundError("task", taskID.String())
		}
		log.Error("failed to update task", slog.String("error", err.Error()))
		return nil, NewServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated",
		slog.String("actor_id", actorID.String()),
		slog.String("status", string(updated.Status)))

	s.publisher.Publish(ctx, events.TaskUpdated(updated))
	return updated, nil
}

// QueryTasks implements TaskService.QueryTasks.
func (s *taskServiceImpl) QueryTasks(ctx context.Context, f query.Filter) ([]domain.TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.ProjectID != nil {
		if err := s.requireProject(ctx, *f.ProjectID); err != nil {
			return nil, err
		}
	}
	if f.AssignedUserID != nil {
		if err := s.requireUser(ctx, *f.AssignedUserID); err != nil {
			return nil, err
		}
	}

	stmt, err := query.Build(f)
	if err != nil {
		return nil, err
	}

	views, err := s.tasks.Search(ctx, stmt)
	if err != nil {
		log.Error("task query failed", slog.String("error", err.Error()))
		return nil, NewServiceError("query_tasks", "failed to query tasks", err)
	}

	log.Debug("task query finished", slog.Int("results", len(views)))
	return views, nil
}

// ListTaskLogs implements TaskService.ListTaskLogs.
func (s *taskServiceImpl) ListTaskLogs(ctx context.Context, taskID uuid.UUID) ([]domain.TaskChange, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.NewNotFoundError("task", taskID.String())
		}
		return nil, NewServiceError("list_task_logs", "failed to load task", err)
	}

	changes, err := s.logs.ListByTask(ctx, taskID)
	if err != nil {
		return nil, NewServiceError("list_task_logs", "failed to load task history", err)
	}
	return changes, nil
}

func (s *taskServiceImpl) requireProject(ctx context.Context, id uuid.UUID) error {
	ok, err := s.projects.Exists(ctx, id)
	if err != nil {
		return NewServiceError("check_project", "failed to look up project", err)
	}
	if !ok {
		return domain.NewNotFoundError("project", id.String())
	}
	return nil
}

func (s *taskServiceImpl) requireUser(ctx context.Context, id uuid.UUID) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return NewServiceError("check_user", "failed to look up user", err)
	}
	if !ok {
		return domain.NewNotFoundError("user", id.String())
	}
	return nil
}
