package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/query"
	"github.com/akssingh0102/task-management/internal/service"
)

// ErrNotConfigured is returned by service mocks whose Fn field is unset.
var ErrNotConfigured = errors.New("mock function not configured")

// MockTaskService implements service.TaskService for handler tests.
type MockTaskService struct {
	CreateTaskFn   func(ctx context.Context, actorID uuid.UUID, in service.CreateTaskInput) (*domain.Task, error)
	UpdateTaskFn   func(ctx context.Context, actorID, taskID uuid.UUID, u domain.TaskUpdate) (*domain.Task, error)
	QueryTasksFn   func(ctx context.Context, f query.Filter) ([]domain.TaskView, error)
	ListTaskLogsFn func(ctx context.Context, taskID uuid.UUID) ([]domain.TaskChange, error)
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) CreateTask(
	ctx context.Context,
	actorID uuid.UUID,
	in service.CreateTaskInput,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, actorID, in)
	}
	return nil, ErrNotConfigured
}

func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	actorID, taskID uuid.UUID,
	u domain.TaskUpdate,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, actorID, taskID, u)
	}
	return nil, ErrNotConfigured
}

func (m *MockTaskService) QueryTasks(ctx context.Context, f query.Filter) ([]domain.TaskView, error) {
	if m.QueryTasksFn != nil {
		return m.QueryTasksFn(ctx, f)
	}
	return nil, ErrNotConfigured
}

func (m *MockTaskService) ListTaskLogs(ctx context.Context, taskID uuid.UUID) ([]domain.TaskChange, error) {
	if m.ListTaskLogsFn != nil {
		return m.ListTaskLogsFn(ctx, taskID)
	}
	return nil, ErrNotConfigured
}

// MockUserService implements service.UserService for handler tests.
type MockUserService struct {
	RegisterFn func(ctx context.Context, name, email, password string) (*domain.User, string, error)
	LoginFn    func(ctx context.Context, email, password string) (*domain.User, string, error)
	GetUserFn  func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, name, email, password)
	}
	return nil, "", ErrNotConfigured
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return nil, "", ErrNotConfigured
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, userID)
	}
	return nil, ErrNotConfigured
}

// MockProjectService implements service.ProjectService for handler tests.
type MockProjectService struct {
	CreateProjectFn     func(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Project, error)
	AddCommentFn        func(ctx context.Context, authorID, taskID uuid.UUID, content string) (*domain.Comment, error)
	ListNotificationsFn func(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
}

var _ service.ProjectService = (*MockProjectService)(nil)

func (m *MockProjectService) CreateProject(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Project, error) {
	if m.CreateProjectFn != nil {
		return m.CreateProjectFn(ctx, ownerID, name)
	}
	return nil, ErrNotConfigured
}

func (m *MockProjectService) AddComment(
	ctx context.Context,
	authorID, taskID uuid.UUID,
	content string,
) (*domain.Comment, error) {
	if m.AddCommentFn != nil {
		return m.AddCommentFn(ctx, authorID, taskID, content)
	}
	return nil, ErrNotConfigured
}

func (m *MockProjectService) ListNotifications(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	if m.ListNotificationsFn != nil {
		return m.ListNotificationsFn(ctx, userID)
	}
	return nil, ErrNotConfigured
}
