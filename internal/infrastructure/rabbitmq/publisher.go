package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hostlink-ma/hostlink-services/api/internal/events"
	"github.com/hostlink-ma/hostlink-services/api/internal/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends domain events to a topic exchange. The event name is the
// routing key.
type Publisher struct {
	conn     *amqp.Connection
	channel  channel
	exchange string
	logger   *slog.Logger
}

// Dial connects to the broker and declares a durable topic exchange.
func Dial(url, exchange string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}
	p := newPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{channel: ch, exchange: exchange, logger: logger}
}

// Publish sends event as a persistent JSON message. Failures are logged; the
// write that produced the event has already succeeded.
func (p *Publisher) Publish(ctx context.Context, event events.Event) {
	msg, err := buildPublishing(event, logging.TraceID(ctx))
	if err != nil {
		p.logger.Error("encode event", "event", event.Name, "err", err)
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.channel.PublishWithContext(pubCtx, p.exchange, event.Name, false, false, msg); err != nil {
		logging.FromContext(ctx, p.logger).Error("publish event", "event", event.Name, "event_id", event.ID, "err", err)
		return
	}
	logging.FromContext(ctx, p.logger).Debug("event published", "event", event.Name, "event_id", event.ID)
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func buildPublishing(event events.Event, traceID string) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, err
	}
	headers := amqp.Table{}
	if traceID != "" {
		headers["x-trace-id"] = traceID
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         event.Name,
		Headers:      headers,
		Body:         body,
	}, nil
}
