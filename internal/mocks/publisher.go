package mocks

import (
	"context"
	"sync"

	"github.com/akssingh0102/task-management/internal/events"
)

// MockPublisher implements events.ChangePublisher by recording events.
type MockPublisher struct {
	mu     sync.Mutex
	Events []events.ChangeEvent
}

var _ events.ChangePublisher = (*MockPublisher)(nil)

func (m *MockPublisher) Publish(_ context.Context, e events.ChangeEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, e)
}

// Published returns a copy of the recorded events.
func (m *MockPublisher) Published() []events.ChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.ChangeEvent(nil), m.Events...)
}
