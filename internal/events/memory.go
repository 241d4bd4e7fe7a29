package events

import (
	"context"
	"log/slog"
	"sync"
)

// DefaultBufferSize is the per-subscriber queue length of a MemoryBroker.
const DefaultBufferSize = 64

// MemoryBroker is an in-process Broker. Each subscriber gets its own
// buffered queue; a publish to a full queue drops the payload for that
// subscriber only.
type MemoryBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[*subscription]struct{}
	bufferSize  int
	logger      *slog.Logger
}

type subscription struct {
	ch chan []byte
}

// NewMemoryBroker creates an empty broker. A bufferSize below 1 selects
// DefaultBufferSize.
func NewMemoryBroker(bufferSize int, logger *slog.Logger) *MemoryBroker {
	if logger == nil {
		logger = slog.Default()
	}
	if bufferSize < 1 {
		bufferSize = DefaultBufferSize
	}
	return &MemoryBroker{
		subscribers: make(map[string]map[*subscription]struct{}),
		bufferSize:  bufferSize,
		logger:      logger.With(slog.String("component", "memory_broker")),
	}
}

var _ Broker = (*MemoryBroker)(nil)

// Publish implements Broker.Publish.
func (b *MemoryBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	subs := make([]*subscription, 0, len(b.subscribers[topic]))
	for s := range b.subscribers[topic] {
		subs = append(subs, s)
	}
	b.mu.RUnlock()

	msg := append([]byte(nil), payload...)
	for _, s := range subs {
		select {
		case s.ch <- msg:
		default:
			b.logger.Warn("subscriber queue full, dropping message",
				slog.String("topic", topic))
		}
	}

	b.logger.Debug("message published",
		slog.String("topic", topic),
		slog.Int("subscribers", len(subs)))
	return nil
}

// Subscribe implements Broker.Subscribe.
func (b *MemoryBroker) Subscribe(ctx context.Context, topic string, handler Handler) error {
	s := &subscription{ch: make(chan []byte, b.bufferSize)}

	b.mu.Lock()
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[*subscription]struct{})
	}
	b.subscribers[topic][s] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.subscribers[topic], s)
		if len(b.subscribers[topic]) == 0 {
			delete(b.subscribers, topic)
		}
		b.mu.Unlock()
	}()

	b.logger.Debug("subscribed", slog.String("topic", topic))

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-s.ch:
			handler(ctx, msg)
		}
	}
}

// Subscribers reports how many subscriptions are active on topic.
func (b *MemoryBroker) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}
