// Package service publishes domain events to RabbitMQ. Errors are logged and
// returned so callers can ignore them without interrupting the request flow.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/energopraktiki/internal/queue"
)

// Publisher dials the broker per publish. Sign-ups are rare enough that a
// long-lived channel is not worth the reconnect handling.
type Publisher struct {
	URL    string
	Logger *slog.Logger
	Now    func() time.Time
}

func NewPublisher(url string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{URL: url, Logger: logger, Now: time.Now}
}

// PublishNewsletterSubscribed sends a persistent NewsletterSubscribedEvent to
// the newsletter.subscribed queue.
func (p *Publisher) PublishNewsletterSubscribed(ctx context.Context, email, source string) error {
	ev := queue.NewNewsletterSubscribed(email, source, p.Now())
	return p.publish(ctx, queue.NewsletterQueue, ev)
}

func (p *Publisher) publish(ctx context.Context, queueName string, event any) error {
	log := p.Logger.With("queue", queueName)
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Warn("rabbitmq dial failed", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn("rabbitmq channel open failed", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Warn("rabbitmq queue declare failed", "error", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Warn("marshal event failed", "error", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Warn("rabbitmq publish failed", "error", err)
		return err
	}
	return nil
}
