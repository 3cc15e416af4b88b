// internal/queue/amqp.go
package queue

import (
	"context"
	"encoding/json"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

type amqpJob struct {
	ID int64 `json:"id"`
}

// AMQPQueue publishes and consumes jobs over RabbitMQ. Queues are declared
// durable and messages persistent so contact notifications survive a broker
// restart.
type AMQPQueue struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger

	maxRetries int
}

func NewAMQPQueue(url string, logger *zap.Logger) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &AMQPQueue{
		conn:       conn,
		channel:    ch,
		logger:     logger,
		maxRetries: 3,
	}, nil
}

func (q *AMQPQueue) declare(topic string) (amqp.Queue, error) {
	return q.channel.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
}

func (q *AMQPQueue) Publish(ctx context.Context, topic string, id int64) error {
	if _, err := q.declare(topic); err != nil {
		return err
	}
	body, err := json.Marshal(amqpJob{ID: id})
	if err != nil {
		return err
	}
	return q.channel.Publish(
		"",    // default exchange
		topic, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Subscribe consumes the topic until the channel closes. Failed deliveries
// are requeued up to maxRetries via a retry-count header, then acked away.
func (q *AMQPQueue) Subscribe(topic string, handler func(ctx context.Context, id int64) error) error {
	queue, err := q.declare(topic)
	if err != nil {
		return err
	}
	msgs, err := q.channel.Consume(
		queue.Name,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for d := range msgs {
			var job amqpJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				q.logger.Warn("discarding malformed job", zap.String("topic", topic), zap.Error(err))
				d.Ack(false)
				continue
			}

			if err := handler(context.Background(), job.ID); err != nil {
				retries := retryCount(d.Headers)
				if retries < q.maxRetries {
					q.logger.Warn("job failed, requeueing",
						zap.String("topic", topic),
						zap.Int64("id", job.ID),
						zap.Int("retries", retries),
						zap.Error(err),
					)
					d.Nack(false, true)
					continue
				}
				q.logger.Error("job permanently failed",
					zap.String("topic", topic),
					zap.Int64("id", job.ID),
					zap.Error(err),
				)
			}
			d.Ack(false)
		}
	}()
	return nil
}

func retryCount(headers amqp.Table) int {
	if headers == nil {
		return 0
	}
	if v, ok := headers["x-retry-count"]; ok {
		if n, ok := v.(int32); ok {
			return int(n)
		}
	}
	return 0
}

func (q *AMQPQueue) Close() error {
	if err := q.channel.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}

var _ Queue = (*AMQPQueue)(nil)
