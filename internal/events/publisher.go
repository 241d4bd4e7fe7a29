package events

import (
	"context"
	"log/slog"

	"github.com/akssingh0102/task-management/internal/platform/logger"
)

// ChangePublisher announces committed task changes.
type ChangePublisher interface {
	Publish(ctx context.Context, e ChangeEvent)
}

// Publisher serializes change events and hands them to a Broker.
// Failures are logged and never returned: the change they describe is
// already committed.
type Publisher struct {
	broker Broker
	topic  string
	logger *slog.Logger
}

// NewPublisher creates a Publisher that sends to topic. An empty topic
// selects TopicTasks.
func NewPublisher(broker Broker, topic string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	if topic == "" {
		topic = TopicTasks
	}
	return &Publisher{
		broker: broker,
		topic:  topic,
		logger: logger.With(slog.String("component", "event_publisher")),
	}
}

var _ ChangePublisher = (*Publisher)(nil)

// Publish implements ChangePublisher.
func (p *Publisher) Publish(ctx context.Context, e ChangeEvent) {
	log := logger.FromContextOrDefault(ctx, p.logger).With(
		slog.String("event", string(e.Kind)),
		slog.String("task_id", e.TaskID.String()),
	)

	payload, err := e.Encode()
	if err != nil {
		log.Error("failed to encode change event", slog.String("error", err.Error()))
		return
	}

	if err := p.broker.Publish(ctx, p.topic, payload); err != nil {
		log.Error("failed to publish change event",
			slog.String("topic", p.topic),
			slog.String("error", err.Error()))
		return
	}

	log.Debug("change event published", slog.String("topic", p.topic))
}
