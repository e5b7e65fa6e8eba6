// Package rabbit publishes order lifecycle events to a RabbitMQ fanout
// exchange. Publishing happens after the database transaction commits and is
// fire-and-forget: a broker failure is logged by the caller, never rolled
// back into the business operation.
package rabbit

import (
	"context"
	"encoding/json"

	"orderflow/internal/core/ports"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher implements ports.EventPublisher on top of an AMQP channel.
type Publisher struct {
	channel  *amqp091.Channel
	exchange string
}

// NewPublisher declares the fanout exchange and returns a publisher bound to it.
func NewPublisher(channel *amqp091.Channel, exchange string) (*Publisher, error) {
	err := channel.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &Publisher{channel: channel, exchange: exchange}, nil
}

// PublishOrderStatusChanged sends one status-change event to the exchange.
// Consumers bind their own queues; the routing key is ignored for fanout.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		"", // fanout ignores the routing key
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
		},
	)
}
