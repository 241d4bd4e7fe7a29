package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/store"
)

// MockProjectStore implements store.ProjectStore for testing
type MockProjectStore struct {
	CreateFn func(ctx context.Context, project *domain.Project) error
	ExistsFn func(ctx context.Context, id uuid.UUID) (bool, error)

	mu       sync.Mutex
	Projects map[uuid.UUID]*domain.Project
}

// NewMockProjectStore creates a mock holding projects.
func NewMockProjectStore(projects ...*domain.Project) *MockProjectStore {
	m := &MockProjectStore{Projects: map[uuid.UUID]*domain.Project{}}
	for _, p := range projects {
		m.Projects[p.ID] = p
	}
	return m
}

var _ store.ProjectStore = (*MockProjectStore)(nil)

func (m *MockProjectStore) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, project)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Projects[project.ID] = project
	return nil
}

func (m *MockProjectStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Projects[id]; ok {
		return p, nil
	}
	return nil, store.ErrProjectNotFound
}

func (m *MockProjectStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Projects[id]
	return ok, nil
}

func (m *MockProjectStore) WithTx(*sql.Tx) store.ProjectStore { return m }

// MockCommentStore implements store.CommentStore for testing
type MockCommentStore struct {
	CreateFn func(ctx context.Context, comment *domain.Comment) error

	mu       sync.Mutex
	Comments []domain.Comment
}

var _ store.CommentStore = (*MockCommentStore)(nil)

func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, comment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Comments = append(m.Comments, *comment)
	return nil
}
