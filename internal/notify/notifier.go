package notify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/config"
	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/events"
	"github.com/akssingh0102/task-management/internal/retry"
	"github.com/akssingh0102/task-management/internal/store"
)

// Notifier consumes change events from a Broker and writes one notification
// per event.
type Notifier struct {
	broker        events.Broker
	topic         string
	notifications store.NotificationStore
	policy        retry.Policy
	logger        *slog.Logger
}

// NewNotifier creates a Notifier subscribed to topic. An empty topic
// selects events.TopicTasks.
func NewNotifier(
	broker events.Broker,
	topic string,
	notifications store.NotificationStore,
	cfg config.NotifierConfig,
	logger *slog.Logger,
) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	if topic == "" {
		topic = events.TopicTasks
	}
	return &Notifier{
		broker:        broker,
		topic:         topic,
		notifications: notifications,
		policy: retry.Policy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  cfg.BaseDelay,
			MaxDelay:   cfg.MaxDelay,
		},
		logger: logger.With(slog.String("component", "notifier")),
	}
}

// Run blocks handling events until ctx is cancelled.
func (n *Notifier) Run(ctx context.Context) error {
	n.logger.Info("notifier started",
		slog.String("topic", n.topic),
		slog.Int("max_attempts", n.policy.Attempts()))
	err := n.broker.Subscribe(ctx, n.topic, n.Handle)
	n.logger.Info("notifier stopped")
	return err
}

// Handle processes one wire payload. It never returns an error: malformed
// payloads and exhausted retries are logged and the payload is dropped.
func (n *Notifier) Handle(ctx context.Context, payload []byte) {
	ev, err := events.Decode(payload)
	if err != nil {
		n.logger.Error("discarding malformed event",
			slog.String("error", err.Error()),
			slog.Int("payload_bytes", len(payload)))
		return
	}

	log := n.logger.With(
		slog.String("event", string(ev.Kind)),
		slog.String("task_id", ev.TaskID.String()),
	)

	if ev.AssignedUserID == nil || *ev.AssignedUserID == uuid.Nil {
		log.Info("task has no assignee, no notification sent")
		return
	}

	note, err := domain.NewNotification(*ev.AssignedUserID, ev.TaskID, Message(ev))
	if err != nil {
		log.Error("cannot build notification", slog.String("error", err.Error()))
		return
	}

	policy := n.policy
	policy.OnFailure = func(attempt int, err error) {
		log.Warn("notification write failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", n.policy.Attempts()),
			slog.String("error", err.Error()))
	}

	err = retry.Do(ctx, policy, func(ctx context.Context) error {
		err := n.notifications.Create(ctx, note)
		if err != nil && !isRetryable(err) {
			return retry.Permanent(err)
		}
		return err
	})
	if errors.Is(err, store.ErrDuplicate) {
		// An earlier attempt committed but its acknowledgement was lost.
		log.Info("notification already stored",
			slog.String("notification_id", note.ID.String()),
			slog.String("user_id", note.UserID.String()))
		return
	}
	if err != nil {
		log.Error("giving up on notification",
			slog.String("user_id", note.UserID.String()),
			slog.String("error", err.Error()))
		return
	}

	log.Info("notification stored",
		slog.String("notification_id", note.ID.String()),
		slog.String("user_id", note.UserID.String()))
}

// Message returns the notification text for ev. Unknown kinds produce an
// empty message.
func Message(ev events.ChangeEvent) string {
	switch ev.Kind {
	case events.KindTaskCreated:
		return domain.CreatedMessage(ev.Status)
	case events.KindTaskUpdated:
		return domain.UpdatedMessage(ev.Status)
	default:
		return ""
	}
}

// isRetryable rejects failures that another attempt cannot fix, such as a
// notification pointing at a deleted task or user, or one whose row is
// already stored.
func isRetryable(err error) bool {
	return !errors.Is(err, store.ErrInvalidEntity) &&
		!errors.Is(err, domain.ErrValidation) &&
		!errors.Is(err, store.ErrDuplicate)
}
