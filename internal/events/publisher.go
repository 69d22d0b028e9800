package events

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/streadway/amqp"
)

// Publisher sends resume events to downstream consumers.
type Publisher interface {
	PublishResumeProcessed(ctx context.Context, msg ResumeProcessed) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishResumeProcessed(context.Context, ResumeProcessed) error { return nil }

func (NoopPublisher) Close() error { return nil }

type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes JSON events to a RabbitMQ topic exchange. A fresh
// channel is opened per publish, so the publisher is safe for concurrent use.
type AMQPPublisher struct {
	exchange string
	conn     io.Closer
	open     func() (channel, error)
}

// NewAMQPPublisher dials the broker and declares a durable topic exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("AMQP_URL is required")
	}
	if strings.TrimSpace(exchange) == "" {
		return nil, fmt.Errorf("AMQP_EXCHANGE is required")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{
		exchange: exchange,
		conn:     conn,
		open: func() (channel, error) {
			return conn.Channel()
		},
	}, nil
}

// PublishResumeProcessed sends msg with the resume.processed routing key.
func (p *AMQPPublisher) PublishResumeProcessed(ctx context.Context, msg ResumeProcessed) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := EncodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	ch, err := p.open()
	if err != nil {
		return fmt.Errorf("open amqp channel: %w", err)
	}
	defer ch.Close()

	err = ch.Publish(p.exchange, RoutingKeyResumeProcessed, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ResumeID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", RoutingKeyResumeProcessed, err)
	}
	return nil
}

// Close closes the broker connection.
func (p *AMQPPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

var (
	_ Publisher = NoopPublisher{}
	_ Publisher = (*AMQPPublisher)(nil)
)
