package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akssingh0102/task-management/internal/config"
	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/events"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/store"
)

// fakeNotificationStore fails the first failures[i] calls for the i-th
// distinct task it sees, then succeeds.
type fakeNotificationStore struct {
	mu       sync.Mutex
	err      error
	failFor  map[uuid.UUID]int
	calls    map[uuid.UUID]int
	stored   []domain.Notification
	received chan struct{}
}

func newFakeStore(err error) *fakeNotificationStore {
	return &fakeNotificationStore{
		err:      err,
		failFor:  map[uuid.UUID]int{},
		calls:    map[uuid.UUID]int{},
		received: make(chan struct{}, 100),
	}
}

func (s *fakeNotificationStore) Create(_ context.Context, n *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[n.TaskID]++
	if s.calls[n.TaskID] <= s.failFor[n.TaskID] {
		return s.err
	}
	s.stored = append(s.stored, *n)
	s.received <- struct{}{}
	return nil
}

func (s *fakeNotificationStore) ListByUser(context.Context, uuid.UUID) ([]domain.Notification, error) {
	return nil, nil
}

func (s *fakeNotificationStore) callsFor(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id]
}

func (s *fakeNotificationStore) snapshot() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification(nil), s.stored...)
}

var testConfig = config.NotifierConfig{Enabled: true, MaxRetries: 3, BaseDelay: time.Millisecond}

func payload(t *testing.T, ev events.ChangeEvent) []byte {
	t.Helper()
	b, err := ev.Encode()
	require.NoError(t, err)
	return b
}

func TestMessage(t *testing.T) {
	tests := []struct {
		kind   events.ChangeKind
		status domain.TaskStatus
		want   string
	}{
		{events.KindTaskCreated, domain.TaskStatusPending, "A new task has been created with status: pending."},
		{events.KindTaskUpdated, domain.TaskStatusCompleted, "Task status has been updated to: completed."},
		{"task_deleted", domain.TaskStatusPending, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, Message(events.ChangeEvent{Kind: tt.kind, Status: tt.status}))
		})
	}
}

func TestHandleStoresNotificationForAssignee(t *testing.T) {
	fake := newFakeStore(nil)
	n := NewNotifier(nil, "", fake, testConfig, nil)

	assignee, taskID := uuid.New(), uuid.New()
	n.Handle(context.Background(), payload(t, events.ChangeEvent{
		Kind: events.KindTaskUpdated, TaskID: taskID, Status: domain.TaskStatusInProgress, AssignedUserID: &assignee,
	}))

	stored := fake.snapshot()
	require.Len(t, stored, 1)
	assert.Equal(t, assignee, stored[0].UserID)
	assert.Equal(t, taskID, stored[0].TaskID)
	assert.Equal(t, "Task status has been updated to: in_progress.", stored[0].Message)
}

func TestHandleRetriesTransientFailures(t *testing.T) {
	fake := newFakeStore(fmt.Errorf("%w: connection reset", store.ErrTransient))
	log, buf := logger.NewTestLogger(t)
	n := NewNotifier(nil, "", fake, testConfig, log)

	assignee, taskID := uuid.New(), uuid.New()
	fake.failFor[taskID] = 2

	n.Handle(context.Background(), payload(t, events.ChangeEvent{
		Kind: events.KindTaskCreated, TaskID: taskID, Status: domain.TaskStatusPending, AssignedUserID: &assignee,
	}))

	assert.Equal(t, 3, fake.callsFor(taskID))
	assert.Len(t, fake.snapshot(), 1)

	entries, err := buf.Entries()
	require.NoError(t, err)
	var attempts []float64
	for _, e := range entries {
		if e["msg"] == "notification write failed" {
			attempts = append(attempts, e["attempt"].(float64))
		}
	}
	assert.Equal(t, []float64{1, 2}, attempts)
}

func TestHandleGivesUpAfterFourAttempts(t *testing.T) {
	fake := newFakeStore(errors.New("database unavailable"))
	log, buf := logger.NewTestLogger(t)
	n := NewNotifier(nil, "", fake, testConfig, log)

	assignee, taskID := uuid.New(), uuid.New()
	fake.failFor[taskID] = 100

	n.Handle(context.Background(), payload(t, events.ChangeEvent{
		Kind: events.KindTaskCreated, TaskID: taskID, Status: domain.TaskStatusPending, AssignedUserID: &assignee,
	}))

	assert.Equal(t, 4, fake.callsFor(taskID))
	assert.Empty(t, fake.snapshot())
	assert.Contains(t, buf.String(), "giving up on notification")
}

func TestHandleDoesNotRetryInvalidEntity(t *testing.T) {
	fake := newFakeStore(fmt.Errorf("%w: foreign key violation", store.ErrInvalidEntity))
	n := NewNotifier(nil, "", fake, testConfig, nil)

	assignee, taskID := uuid.New(), uuid.New()
	fake.failFor[taskID] = 100

	n.Handle(context.Background(), payload(t, events.ChangeEvent{
		Kind: events.KindTaskCreated, TaskID: taskID, Status: domain.TaskStatusPending, AssignedUserID: &assignee,
	}))

	assert.Equal(t, 1, fake.callsFor(taskID))
}

func TestHandleTreatsDuplicateAsStored(t *testing.T) {
	fake := newFakeStore(fmt.Errorf("%w: notifications_pkey", store.ErrDuplicate))
	log, buf := logger.NewTestLogger(t)
	n := NewNotifier(nil, "", fake, testConfig, log)

	assignee, taskID := uuid.New(), uuid.New()
	fake.failFor[taskID] = 100

	n.Handle(context.Background(), payload(t, events.ChangeEvent{
		Kind: events.KindTaskUpdated, TaskID: taskID, Status: domain.TaskStatusCompleted, AssignedUserID: &assignee,
	}))

	assert.Equal(t, 1, fake.callsFor(taskID))
	assert.Contains(t, buf.String(), "notification already stored")
	assert.NotContains(t, buf.String(), "giving up on notification")
}

func TestHandleSkipsUnassignedAndMalformed(t *testing.T) {
	fake := newFakeStore(nil)
	log, buf := logger.NewTestLogger(t)
	n := NewNotifier(nil, "", fake, testConfig, log)

	n.Handle(context.Background(), payload(t, events.ChangeEvent{
		Kind: events.KindTaskCreated, TaskID: uuid.New(), Status: domain.TaskStatusPending,
	}))
	n.Handle(context.Background(), []byte(`{"event":`))

	assert.Empty(t, fake.snapshot())
	assert.Contains(t, buf.String(), "task has no assignee")
	assert.Contains(t, buf.String(), "discarding malformed event")
}

func TestRunContinuesAfterExhaustedEvent(t *testing.T) {
	broker := events.NewMemoryBroker(0, nil)
	fake := newFakeStore(errors.New("write failed"))
	n := NewNotifier(broker, events.TopicTasks, fake, testConfig, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()
	require.Eventually(t, func() bool { return broker.Subscribers(events.TopicTasks) == 1 },
		time.Second, 5*time.Millisecond)

	assignee := uuid.New()
	poisoned, healthy := uuid.New(), uuid.New()
	fake.failFor[poisoned] = 100

	pub := events.NewPublisher(broker, events.TopicTasks, nil)
	pub.Publish(ctx, events.ChangeEvent{Kind: events.KindTaskCreated, TaskID: poisoned, Status: domain.TaskStatusPending, AssignedUserID: &assignee})
	pub.Publish(ctx, events.ChangeEvent{Kind: events.KindTaskUpdated, TaskID: healthy, Status: domain.TaskStatusCompleted, AssignedUserID: &assignee})

	select {
	case <-fake.received:
	case <-time.After(2 * time.Second):
		t.Fatal("second event was not handled")
	}

	assert.Equal(t, 4, fake.callsFor(poisoned))
	stored := fake.snapshot()
	require.Len(t, stored, 1)
	assert.Equal(t, healthy, stored[0].TaskID)
	assert.Equal(t, "Task status has been updated to: completed.", stored[0].Message)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
