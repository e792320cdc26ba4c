package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// Publisher - то, что адаптеру нужно от rabbitmq_producer.Publisher
type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// MailerAdapter ставит письма в очередь для mail-worker
type MailerAdapter struct {
	producer   Publisher
	routingKey string
}

func NewMailerAdapter(producer Publisher, routingKey string) (*MailerAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &MailerAdapter{producer: producer, routingKey: routingKey}, nil
}

func (a *MailerAdapter) SendVerificationEmail(ctx context.Context, email domain.VerificationEmail) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "MailerAdapter",
		"routing_key": a.routingKey,
		"user_id":     email.UserID.String(),
	})

	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal verification email: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish verification email", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish verification email: %w", err)
	}

	adapterLogger.Info("Verification email queued", nil)
	return nil
}

// LogMailer используется, когда RabbitMQ выключен: письмо только пишется в лог
type LogMailer struct{}

func (LogMailer) SendVerificationEmail(ctx context.Context, email domain.VerificationEmail) error {
	contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "LogMailer",
		"user_id":   email.UserID.String(),
	}).Info("Messaging disabled, verification link logged instead", port.Fields{"link": email.Link})
	return nil
}
