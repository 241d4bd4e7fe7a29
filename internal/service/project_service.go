package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/store"
)

// ProjectService manages projects, comments and the notification inbox.
type ProjectService interface {
	CreateProject(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Project, error)

	// AddComment attaches a comment by authorID to an existing task.
	AddComment(ctx context.Context, authorID, taskID uuid.UUID, content string) (*domain.Comment, error)

	// ListNotifications returns the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
}

type projectServiceImpl struct {
	projects      store.ProjectStore
	comments      store.CommentStore
	tasks         store.TaskStore
	notifications store.NotificationStore
	logger        *slog.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(
	projects store.ProjectStore,
	comments store.CommentStore,
	tasks store.TaskStore,
	notifications store.NotificationStore,
	logger *slog.Logger,
) ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &projectServiceImpl{
		projects:      projects,
		comments:      comments,
		tasks:         tasks,
		notifications: notifications,
		logger:        logger.With(slog.String("component", "project_service")),
	}
}

func (s *projectServiceImpl) CreateProject(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Project, error) {
	if ownerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	project, err := domain.NewProject(name, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, NewServiceError("create_project", "failed to save project", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("project created",
		slog.String("project_id", project.ID.String()),
		slog.String("owner_id", ownerID.String()))
	return project, nil
}

func (s *projectServiceImpl) AddComment(
	ctx context.Context,
	authorID, taskID uuid.UUID,
	content string,
) (*domain.Comment, error) {
	if authorID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	comment, err := domain.NewComment(taskID, authorID, content)
	if err != nil {
		return nil, err
	}

	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		if isNotFound(err) {
			return nil, domain.NewNotFoundError("task", taskID.String())
		}
		return nil, NewServiceError("add_comment", "failed to load task", err)
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, NewServiceError("add_comment", "failed to save comment", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("comment added",
		slog.String("comment_id", comment.ID.String()),
		slog.String("task_id", taskID.String()))
	return comment, nil
}

func (s *projectServiceImpl) ListNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	list, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_notifications", "failed to load notifications", err)
	}
	return list, nil
}
