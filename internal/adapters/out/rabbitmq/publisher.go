// Package rabbitmq publishes domain events to a RabbitMQ topic exchange.
// The routing key of every message is the event type.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"repairshop/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Message is the JSON body of a published event.
type Message struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	AggregateID string         `json:"aggregate_id"`
	OccurredAt  time.Time      `json:"occurred_at"`
	Data        map[string]any `json:"data,omitempty"`
}

// Publisher implements ports.EventPublisher over one AMQP channel.
type Publisher struct {
	conn     *amqp.Connection
	channel  Channel
	exchange string
	logger   *slog.Logger
}

// Dial connects to url, opens a channel and declares exchange as a durable
// topic exchange.
func Dial(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := NewPublisher(ch, exchange, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

// NewPublisher declares the exchange on an already open channel.
func NewPublisher(ch Channel, exchange string, logger *slog.Logger) (*Publisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	return &Publisher{
		channel:  ch,
		exchange: exchange,
		logger:   logger.With("component", "rabbitmq_publisher"),
	}, nil
}

// Publish sends every event and returns the joined errors of the ones that failed.
func (p *Publisher) Publish(ctx context.Context, events ...ports.Event) error {
	var errs []error

	for _, e := range events {
		body, err := json.Marshal(toMessage(e))
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to marshal %s: %w", e.Type, err))
			continue
		}

		err = p.channel.PublishWithContext(ctx, p.exchange, string(e.Type), false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    e.ID.String(),
			Type:         string(e.Type),
			Timestamp:    e.OccurredAt,
			Body:         body,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to publish %s: %w", e.Type, err))
			continue
		}

		p.logger.DebugContext(ctx, "event published",
			"event_type", string(e.Type),
			"event_id", e.ID.String(),
		)
	}

	return errors.Join(errs...)
}

// Close releases the channel and, for publishers created by Dial, the connection.
func (p *Publisher) Close() error {
	err := p.channel.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}

func toMessage(e ports.Event) Message {
	return Message{
		ID:          e.ID.String(),
		Type:        string(e.Type),
		AggregateID: e.AggregateID.String(),
		OccurredAt:  e.OccurredAt,
		Data:        e.Data,
	}
}
