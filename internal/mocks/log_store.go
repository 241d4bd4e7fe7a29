package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/store"
)

// MockTaskLogStore implements store.TaskLogStore for testing
type MockTaskLogStore struct {
	AppendFn func(ctx context.Context, changes []domain.TaskChange) error

	mu          sync.Mutex
	Changes     []domain.TaskChange
	AppendCalls int
}

var _ store.TaskLogStore = (*MockTaskLogStore)(nil)

func (m *MockTaskLogStore) Append(ctx context.Context, changes []domain.TaskChange) error {
	m.mu.Lock()
	m.AppendCalls++
	m.mu.Unlock()
	if m.AppendFn != nil {
		return m.AppendFn(ctx, changes)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Changes = append(m.Changes, changes...)
	return nil
}

func (m *MockTaskLogStore) ListByTask(_ context.Context, taskID uuid.UUID) ([]domain.TaskChange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.TaskChange{}
	for _, c := range m.Changes {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ChangeMadeAt.After(out[j].ChangeMadeAt) })
	return out, nil
}

func (m *MockTaskLogStore) WithTx(*sql.Tx) store.TaskLogStore { return m }

// MockNotificationStore implements store.NotificationStore for testing
type MockNotificationStore struct {
	CreateFn func(ctx context.Context, n *domain.Notification) error

	mu            sync.Mutex
	Notifications []domain.Notification
	CreateCalls   int
}

var _ store.NotificationStore = (*MockNotificationStore)(nil)

func (m *MockNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, *n)
	return nil
}

func (m *MockNotificationStore) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Notification{}
	for i := len(m.Notifications) - 1; i >= 0; i-- {
		if m.Notifications[i].UserID == userID {
			out = append(out, m.Notifications[i])
		}
	}
	return out, nil
}

// Stored returns a copy of the stored notifications.
func (m *MockNotificationStore) Stored() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Notification(nil), m.Notifications...)
}
