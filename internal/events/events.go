package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
)

// TopicTasks is the broadcast channel carrying task change events.
const TopicTasks = "tasks"

// ChangeKind identifies what happened to a task.
type ChangeKind string

const (
	KindTaskCreated ChangeKind = "task_created"
	KindTaskUpdated ChangeKind = "task_updated"
)

// ErrMalformedEvent is returned by Decode when a payload cannot be turned
// into a ChangeEvent.
var ErrMalformedEvent = errors.New("malformed change event")

// ChangeEvent is the message published after a task is created or updated.
// Its JSON form is the wire payload.
type ChangeEvent struct {
	Kind           ChangeKind        `json:"event"`
	TaskID         uuid.UUID         `json:"task_id"`
	Status         domain.TaskStatus `json:"status"`
	AssignedUserID *uuid.UUID        `json:"assigned_user_id"`
}

// TaskCreated builds the event announcing a new task.
func TaskCreated(t *domain.Task) ChangeEvent {
	return ChangeEvent{
		Kind:           KindTaskCreated,
		TaskID:         t.ID,
		Status:         t.Status,
		AssignedUserID: t.AssignedUserID,
	}
}

// TaskUpdated builds the event announcing a change to an existing task.
func TaskUpdated(t *domain.Task) ChangeEvent {
	return ChangeEvent{
		Kind:           KindTaskUpdated,
		TaskID:         t.ID,
		Status:         t.Status,
		AssignedUserID: t.AssignedUserID,
	}
}

// Encode returns the wire payload for e.
func (e ChangeEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Decode parses a wire payload. Unknown kinds are accepted; a payload
// without a task id is not.
func Decode(payload []byte) (ChangeEvent, error) {
	var e ChangeEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return ChangeEvent{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if e.TaskID == uuid.Nil {
		return ChangeEvent{}, fmt.Errorf("%w: missing task_id", ErrMalformedEvent)
	}
	return e, nil
}

// Handler receives raw payloads delivered on a subscribed topic.
type Handler func(ctx context.Context, payload []byte)

// Broker is the messaging port used to broadcast change events.
type Broker interface {
	// Publish sends payload to every current subscriber of topic.
	Publish(ctx context.Context, topic string, payload []byte) error

	// Subscribe calls handler for each payload published on topic until ctx
	// is cancelled. Payloads are handled one at a time in arrival order.
	// It returns nil when ctx is cancelled.
	Subscribe(ctx context.Context, topic string, handler Handler) error
}
