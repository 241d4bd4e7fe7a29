package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/query"
	"github.com/akssingh0102/task-management/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. Search has no
// in-memory default: it returns SearchResult and records the statement.
type MockTaskStore struct {
	CreateFn         func(ctx context.Context, task *domain.Task) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateFn         func(ctx context.Context, id uuid.UUID, u domain.TaskUpdate) (*domain.Task, error)
	SearchFn         func(ctx context.Context, stmt query.Statement) ([]domain.TaskView, error)
	ListDueBetweenFn func(ctx context.Context, from, to time.Time) ([]domain.Task, error)

	SearchResult []domain.TaskView

	mu         sync.Mutex
	Tasks      map[uuid.UUID]*domain.Task
	Statements []query.Statement
	Calls      map[string]int
	TxCount    int
}

// NewMockTaskStore creates a mock holding tasks.
func NewMockTaskStore(tasks ...*domain.Task) *MockTaskStore {
	m := &MockTaskStore{Tasks: map[uuid.UUID]*domain.Task{}, Calls: map[string]int{}}
	for _, t := range tasks {
		m.Tasks[t.ID] = t
	}
	return m
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) record(name string) {
	m.mu.Lock()
	m.Calls[name]++
	m.mu.Unlock()
}

// CallCount returns how often the named method was called.
func (m *MockTaskStore) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[name]
}

// TotalCalls returns the number of calls to any method.
func (m *MockTaskStore) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		n += c
	}
	return n
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *task
	m.Tasks[task.ID] = &stored
	return nil
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MockTaskStore) Update(ctx context.Context, id uuid.UUID, u domain.TaskUpdate) (*domain.Task, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	updated := u.ApplyTo(*t)
	m.Tasks[id] = &updated
	cp := updated
	return &cp, nil
}

func (m *MockTaskStore) Search(ctx context.Context, stmt query.Statement) ([]domain.TaskView, error) {
	m.record("Search")
	m.mu.Lock()
	m.Statements = append(m.Statements, stmt)
	m.mu.Unlock()
	if m.SearchFn != nil {
		return m.SearchFn(ctx, stmt)
	}
	if m.SearchResult == nil {
		return []domain.TaskView{}, nil
	}
	return m.SearchResult, nil
}

// ListDueBetween returns stored tasks with a due date in [from, to] that are
// not completed, ordered by due date.
func (m *MockTaskStore) ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.Task, error) {
	m.record("ListDueBetween")
	if m.ListDueBetweenFn != nil {
		return m.ListDueBetweenFn(ctx, from, to)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Task
	for _, t := range m.Tasks {
		if t.DueDate == nil || t.Status == domain.TaskStatusCompleted {
			continue
		}
		if t.DueDate.Before(from) || t.DueDate.After(to) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(*out[j].DueDate) })
	return out, nil
}

func (m *MockTaskStore) WithTx(*sql.Tx) store.TaskStore {
	m.mu.Lock()
	m.TxCount++
	m.mu.Unlock()
	return m
}
