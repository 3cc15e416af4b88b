package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gamedia/editorial-backend/internal/queue"
)

func TestInMemoryQueueDelivers(t *testing.T) {
	q := queue.NewInMemoryQueue(zap.NewNop())

	got := make(chan int64, 1)
	q.Subscribe(queue.TopicContactNotifications, func(ctx context.Context, id int64) error {
		got <- id
		return nil
	})

	if err := q.Publish(context.Background(), queue.TopicContactNotifications, 42); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case id := <-got:
		if id != 42 {
			t.Errorf("delivered id = %d, want 42", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("job was never delivered")
	}
}

func TestInMemoryQueueRetries(t *testing.T) {
	q := queue.NewInMemoryQueue(zap.NewNop())

	var attempts int32
	done := make(chan struct{})
	q.Subscribe(queue.TopicContactNotifications, func(ctx context.Context, id int64) error {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return errors.New("transient")
		}
		close(done)
		return nil
	})

	q.Publish(context.Background(), queue.TopicContactNotifications, 1)

	select {
	case <-done:
		if n := atomic.LoadInt32(&attempts); n != 3 {
			t.Errorf("attempts = %d, want 3", n)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("job never succeeded after retries")
	}
}

func TestInMemoryQueueIgnoresOtherTopics(t *testing.T) {
	q := queue.NewInMemoryQueue(zap.NewNop())

	called := make(chan struct{}, 1)
	q.Subscribe("other_topic", func(ctx context.Context, id int64) error {
		called <- struct{}{}
		return nil
	})

	q.Publish(context.Background(), queue.TopicContactNotifications, 1)

	select {
	case <-called:
		t.Fatal("handler for another topic must not fire")
	case <-time.After(100 * time.Millisecond):
	}
}
