package rabbitmq_producer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/louissosthenes9/campus-stay-api/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig конфигурация издателя
type PublisherConfig struct {
	rabbitmq_common.Config
	ExchangeName    string // пустая строка - default exchange
	ExchangeType    string // direct, fanout, topic, headers
	DurableExchange bool
	ExchangeArgs    amqp.Table

	// false - издатель рассчитывает, что обменник уже объявлен
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

// publishChannel - часть *amqp.Channel, нужная издателю
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	IsClosed() bool
	Close() error
}

// channelOpener открывает новый канал, обычно через ConnectionManager
type channelOpener func() (publishChannel, error)

// Publisher публикует сообщения в один обменник через собственный канал.
// Закрытый канал (например, после переподключения ConnectionManager) открывается заново при следующей публикации.
type Publisher struct {
	config  PublisherConfig
	open    channelOpener
	channel publishChannel
	mu      sync.Mutex // amqp.Channel не безопасен для конкурентной публикации

	Logger rabbitmq_common.Logger
}

// NewPublisher создает издателя поверх общего соединения
func NewPublisher(cfg PublisherConfig, connManager *rabbitmq_common.ConnectionManager) (*Publisher, error) {
	if connManager == nil {
		return nil, fmt.Errorf("producer: connection manager is required")
	}
	return newPublisher(cfg, func() (publishChannel, error) {
		_, ch, err := connManager.GetChannel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	})
}

func newPublisher(cfg PublisherConfig, open channelOpener) (*Publisher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid base config: %w", err)
	}
	if cfg.DeclareExchangeIfMissing && (cfg.ExchangeName == "" || cfg.ExchangeType == "") {
		return nil, fmt.Errorf("producer: exchange name and type are required when DeclareExchangeIfMissing is true")
	}

	p := &Publisher{
		config: cfg,
		open:   open,
		Logger: logger,
	}
	if err := p.ensureChannel(); err != nil {
		return nil, err
	}
	p.Logger.Debug("Channel obtained from ConnectionManager")
	return p, nil
}

// ensureChannel открывает канал, если текущего нет или он закрыт. Вызывается под p.mu.
func (p *Publisher) ensureChannel() error {
	if p.channel != nil && !p.channel.IsClosed() {
		return nil
	}
	if p.channel != nil {
		p.Logger.Warn("Producer channel is closed, reopening", "exchange", p.config.ExchangeName)
		p.channel = nil
	}

	ch, err := p.open()
	if err != nil {
		return fmt.Errorf("producer: failed to get channel from manager: %w", err)
	}

	if p.config.DeclareExchangeIfMissing {
		p.Logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			false, // auto-delete
			false, // internal
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.channel = ch
	return nil
}

// Publish публикует сообщение с заданным ключом маршрутизации
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	err := p.channel.PublishWithContext(
		ctx,
		p.config.ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		if errors.Is(err, amqp.ErrClosed) {
			// канал умер вместе с соединением, следующая публикация откроет новый
			p.channel = nil
		}
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// Close закрывает канал издателя. Соединение принадлежит ConnectionManager.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.Logger.Error(err, "Error closing channel")
		return err
	}
	p.Logger.Info("Producer closed")
	return nil
}
