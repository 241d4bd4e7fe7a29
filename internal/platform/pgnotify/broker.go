// Package pgnotify implements events.Broker on PostgreSQL LISTEN/NOTIFY.
package pgnotify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akssingh0102/task-management/internal/events"
)

// MaxPayloadSize is the largest payload PostgreSQL accepts in a NOTIFY.
const MaxPayloadSize = 7999

// DefaultReconnectDelay is used when New is given a non-positive delay.
const DefaultReconnectDelay = 2 * time.Second

// ErrPayloadTooLarge is returned by Publish for payloads over MaxPayloadSize.
var ErrPayloadTooLarge = errors.New("notification payload too large")

// Broker publishes with pg_notify and subscribes with LISTEN on a dedicated
// pooled connection. Notifications sent while no connection is listening
// are lost.
type Broker struct {
	pool           *pgxpool.Pool
	reconnectDelay time.Duration
	logger         *slog.Logger
}

// New creates a Broker on pool.
func New(pool *pgxpool.Pool, reconnectDelay time.Duration, logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	if reconnectDelay <= 0 {
		reconnectDelay = DefaultReconnectDelay
	}
	return &Broker{
		pool:           pool,
		reconnectDelay: reconnectDelay,
		logger:         logger.With(slog.String("component", "pgnotify_broker")),
	}
}

var _ events.Broker = (*Broker)(nil)

// Publish implements events.Broker.Publish.
func (b *Broker) Publish(ctx context.Context, topic string, payload []byte) error {
	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}
	if _, err := b.pool.Exec(ctx, "SELECT pg_notify($1, $2)", topic, string(payload)); err != nil {
		return fmt.Errorf("pg_notify on %q: %w", topic, err)
	}
	return nil
}

// Subscribe implements events.Broker.Subscribe. Connection failures are
// logged and the LISTEN is re-established after the reconnect delay.
func (b *Broker) Subscribe(ctx context.Context, topic string, handler events.Handler) error {
	log := b.logger.With(slog.String("topic", topic))

	for {
		err := b.listen(ctx, topic, handler, log)
		if ctx.Err() != nil {
			return nil
		}
		log.Error("listen connection lost, reconnecting",
			slog.String("error", err.Error()),
			slog.Duration("delay", b.reconnectDelay))

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(b.reconnectDelay):
		}
	}
}

func (b *Broker) listen(ctx context.Context, topic string, handler events.Handler, log *slog.Logger) error {
	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}

	healthy := false
	defer func() {
		if healthy {
			cleanup, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if _, err := conn.Exec(cleanup, "UNLISTEN *"); err == nil {
				conn.Release()
				return
			}
		}
		// A connection in an unknown LISTEN state must not go back to the pool.
		_ = conn.Conn().Close(context.Background())
		conn.Release()
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{topic}.Sanitize()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	log.Info("listening for notifications")

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				healthy = true
			}
			return fmt.Errorf("wait for notification: %w", err)
		}
		handler(ctx, []byte(n.Payload))
	}
}
