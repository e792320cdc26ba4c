package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/louissosthenes9/campus-stay-api/internal/contextkeys"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port/usecases_port"
	"github.com/louissosthenes9/campus-stay-api/pkg/rabbitmq/rabbitmq_common"
	"github.com/louissosthenes9/campus-stay-api/pkg/rabbitmq/rabbitmq_consumer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EmailConsumerAdapter принимает задания на письма и передает их use case доставки
type EmailConsumerAdapter struct {
	consumer  *rabbitmq_consumer.DistributingConsumer
	deliverUC usecases_port.DeliverVerificationEmailUseCasePort
	logger    port.LoggerPort
}

func NewEmailConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	deliverUC usecases_port.DeliverVerificationEmailUseCasePort,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*EmailConsumerAdapter, error) {
	adapter := &EmailConsumerAdapter{
		deliverUC: deliverUC,
		logger:    logger,
	}

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_distributing_consumer", "consumer_tag": consumerCfg.ConsumerTag})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewDistributingConsumer(consumerCfg, adapter.messageHandler, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for emails: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

func (a *EmailConsumerAdapter) messageHandler(ctx context.Context, d amqp.Delivery) error {
	traceID, ok := d.Headers["x-trace-id"].(string)
	if !ok || traceID == "" {
		traceID = uuid.New().String()
	}

	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"delivery_tag": d.DeliveryTag,
	})
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	var job domain.VerificationEmail
	if err := json.Unmarshal(d.Body, &job); err != nil {
		// повтор не поможет, сообщение уйдет в DLQ после ретраев
		msgLogger.Error("Error unmarshalling verification email", err, nil)
		return fmt.Errorf("unmarshal error: %w", err)
	}

	if err := a.deliverUC.Execute(ctx, job); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			msgLogger.Warn("Dropping malformed verification email", port.Fields{"error": err.Error()})
			return nil
		}
		return err
	}
	return nil
}

func (a *EmailConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

func (a *EmailConsumerAdapter) Close() error {
	return a.consumer.Close()
}
