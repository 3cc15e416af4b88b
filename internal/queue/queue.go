// internal/queue/queue.go
package queue

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TopicContactNotifications carries contact message IDs awaiting an admin
// notification email.
const TopicContactNotifications = "contact_notifications"

// Queue decouples enqueueing work from processing it. Payloads are message
// IDs; subscribers re-fetch the row so the queue never carries stale state.
type Queue interface {
	Publish(ctx context.Context, topic string, id int64) error
	Subscribe(topic string, handler func(ctx context.Context, id int64) error) error
	Close() error
}

// InMemoryQueue runs handlers in-process with retry and backoff. It serves
// development and tests; production wires the AMQP implementation.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(ctx context.Context, id int64) error
	logger   *zap.Logger

	maxRetries int
	backoff    time.Duration
}

func NewInMemoryQueue(logger *zap.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers:   make(map[string][]func(ctx context.Context, id int64) error),
		logger:     logger,
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
	}
}

func (q *InMemoryQueue) Publish(ctx context.Context, topic string, id int64) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	for _, handler := range handlers {
		go q.process(topic, handler, id)
	}
	return nil
}

func (q *InMemoryQueue) process(topic string, handler func(ctx context.Context, id int64) error, id int64) {
	for attempt := 0; ; attempt++ {
		err := handler(context.Background(), id)
		if err == nil {
			return
		}
		if attempt >= q.maxRetries {
			q.logger.Error("job permanently failed",
				zap.String("topic", topic),
				zap.Int64("id", id),
				zap.Int("attempts", attempt+1),
				zap.Error(err),
			)
			return
		}
		q.logger.Warn("job failed, retrying",
			zap.String("topic", topic),
			zap.Int64("id", id),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		time.Sleep(time.Duration(attempt+1) * q.backoff)
	}
}

func (q *InMemoryQueue) Subscribe(topic string, handler func(ctx context.Context, id int64) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

func (q *InMemoryQueue) Close() error { return nil }

var _ Queue = (*InMemoryQueue)(nil)
