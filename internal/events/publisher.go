package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/metrics"
)

// Publisher hands events to the broker.  Callers own reporting of the
// returned error.
type Publisher interface {
	PublishMessageReceived(ctx context.Context, ev MessageReceived) error
}

// NopPublisher drops every event.  It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishMessageReceived(context.Context, MessageReceived) error { return nil }

// AMQPPublisher publishes persistent JSON messages to a durable queue on the
// default exchange.  A connection is dialed per publish.
type AMQPPublisher struct {
	url string
	log logging.Logger
}

func NewAMQPPublisher(url string, log logging.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, log: log}
}

// New returns an AMQPPublisher for url, or a NopPublisher when url is empty.
func New(url string, log logging.Logger) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return NewAMQPPublisher(url, log)
}

func (p *AMQPPublisher) PublishMessageReceived(ctx context.Context, ev MessageReceived) error {
	err := p.publish(ctx, QueueMessageReceived, ev)
	result := "ok"
	if err != nil {
		result = "error"
	} else {
		p.log.Debug(ctx, "event published", "queue", QueueMessageReceived, "message_id", ev.MessageID)
	}
	metrics.EventsPublishedTotal.WithLabelValues(QueueMessageReceived, result).Inc()
	return err
}

func (p *AMQPPublisher) publish(ctx context.Context, queue string, payload any) error {
	msg, err := encode(payload, time.Now())
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		return err
	}

	return ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		msg,
	)
}

func encode(payload any, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now.UTC(),
		Body:         body,
	}, nil
}
