// internal/messaging/rabbit.go
package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// ReplenishRequest is the queue payload asking the worker to top up the pool.
// Delivery is at-least-once; the worker stays idempotent by rechecking the
// pool size before creating anything.
type ReplenishRequest struct {
	Count int `json:"count"`
}

type RabbitClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewRabbitClient(url, queue string) (*RabbitClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	c := &RabbitClient{conn: conn, channel: ch, queue: queue}
	if err := c.declareQueues(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// declareQueues sets up the durable replenish queue with a dead letter queue
// for poison messages.
func (r *RabbitClient) declareQueues() error {
	dlqName := r.queue + "_dlq"

	_, err := r.channel.QueueDeclare(
		dlqName,
		true, false, false, false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dlqName,
	}
	_, err = r.channel.QueueDeclare(
		r.queue,
		true, false, false, false,
		args,
	)
	if err != nil {
		return fmt.Errorf("declare replenish queue: %w", err)
	}
	return nil
}

// EnqueueReplenish publishes a replenish request for count instances.
func (r *RabbitClient) EnqueueReplenish(count int) error {
	body, err := json.Marshal(ReplenishRequest{Count: count})
	if err != nil {
		return fmt.Errorf("marshal replenish request: %w", err)
	}
	err = r.channel.Publish(
		"",      // default exchange
		r.queue, // routing key (queue name)
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to queue %s: %w", r.queue, err)
	}
	return nil
}

// Consume opens a manual-ack delivery stream from the replenish queue.
func (r *RabbitClient) Consume(consumerTag string) (<-chan amqp.Delivery, error) {
	msgs, err := r.channel.Consume(
		r.queue,
		consumerTag,
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming %s: %w", r.queue, err)
	}
	return msgs, nil
}

// CancelConsumer stops deliveries for the given consumer tag.
func (r *RabbitClient) CancelConsumer(consumerTag string) error {
	return r.channel.Cancel(consumerTag, false)
}

// Close cleans up connection and channel
func (r *RabbitClient) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
