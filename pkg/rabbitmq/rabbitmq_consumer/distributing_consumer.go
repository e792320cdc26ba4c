package rabbitmq_consumer

import (
	"context"
	"fmt"
	"time"

	"github.com/louissosthenes9/campus-stay-api/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одно сообщение. Ack/Nack решает потребитель:
// nil - подтверждение, ошибка - ретрай или финальная DLQ.
type MessageHandler func(ctx context.Context, delivery amqp.Delivery) error

// DistributingConsumer обрабатывает каждое сообщение в отдельной горутине
type DistributingConsumer struct {
	baseConsumer *baseConsumer
	handler      MessageHandler
}

func NewDistributingConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*DistributingConsumer, error) {
	if handler == nil {
		return nil, fmt.Errorf("distributing Consumer: message handler is required")
	}

	bc, err := newBaseConsumer(cfg, connManager)
	if err != nil {
		return nil, fmt.Errorf("distributing Consumer: %w", err)
	}

	return &DistributingConsumer{baseConsumer: bc, handler: handler}, nil
}

// StartConsuming блокируется до отмены ctx или закрытия соединения
func (c *DistributingConsumer) StartConsuming(ctx context.Context) error {
	bc := c.baseConsumer
	if bc.channel == nil || bc.connection == nil || bc.connection.IsClosed() {
		return fmt.Errorf("distributing Consumer: not connected")
	}

	msgs, err := bc.channel.Consume(
		bc.actualQueueName,
		bc.config.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("distributing Consumer %s: failed to register a consumer on queue '%s': %w", bc.config.ConsumerTag, bc.actualQueueName, err)
	}

	bc.Logger.Info("Waiting for messages on queue", "queue_name", bc.actualQueueName)

	go func() {
		for {
			// отмена приоритетнее новых сообщений
			select {
			case <-ctx.Done():
				return
			default:
			}

			select {
			case <-ctx.Done():
				bc.Logger.Info("Context cancelled, exiting consumption loop", "consumer_tag", bc.config.ConsumerTag)
				return
			case d, ok := <-msgs:
				if !ok {
					bc.Logger.Info("Deliveries channel closed by RabbitMQ", "consumer_tag", bc.config.ConsumerTag)
					return
				}
				bc.wg.Add(1)
				go func(delivery amqp.Delivery) {
					defer bc.wg.Done()
					c.process(ctx, delivery)
				}(d)
			}
		}
	}()

	notifyClose := bc.connection.NotifyClose(make(chan *amqp.Error, 1))

	select {
	case <-ctx.Done():
		bc.Logger.Info("Context cancelled. Shutting down consumer.", "consumer_tag", bc.config.ConsumerTag)
		return nil
	case err := <-notifyClose:
		bc.Logger.Error(err, "Connection closed for consumer", "consumer_tag", bc.config.ConsumerTag)
		if err == nil {
			return fmt.Errorf("distributing Consumer: connection closed")
		}
		return err
	}
}

func (c *DistributingConsumer) process(ctx context.Context, delivery amqp.Delivery) {
	bc := c.baseConsumer

	processErr := c.handler(ctx, delivery)
	if processErr == nil {
		_ = delivery.Ack(false)
		bc.Logger.Debug("Message acked", "delivery_tag", delivery.DeliveryTag)
		return
	}

	bc.Logger.Error(processErr, "Handler error for message", "delivery_tag", delivery.DeliveryTag)

	if !bc.config.EnableRetryMechanism {
		_ = delivery.Nack(false, false)
		return
	}

	deaths := deathCount(delivery.Headers, bc.actualQueueName)
	if deaths < int64(bc.config.MaxRetries) {
		bc.Logger.Info("Retrying message", "delivery_tag", delivery.DeliveryTag, "death_count", deaths)
		_ = delivery.Nack(false, false)
		return
	}

	bc.Logger.Warn("Max retries reached, publishing to final DLX", "delivery_tag", delivery.DeliveryTag)
	err := bc.finalDlxPublisher.Publish(context.Background(), bc.config.FinalDLQRoutingKey, amqp.Publishing{
		ContentType:  delivery.ContentType,
		Body:         delivery.Body,
		Headers:      delivery.Headers,
		Timestamp:    time.Now(),
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		bc.Logger.Error(err, "Failed to publish to final DLX, sending back to retry loop", "delivery_tag", delivery.DeliveryTag)
		_ = delivery.Nack(false, false)
		return
	}
	_ = delivery.Ack(false)
}

// Close закрывает потребителя после завершения обработчиков
func (c *DistributingConsumer) Close() error {
	c.baseConsumer.Logger.Info("Closing consumer")
	return c.baseConsumer.Close()
}
