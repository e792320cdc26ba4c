package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	rabbitmq_adapter "github.com/louissosthenes9/campus-stay-api/internal/adapters/rabbitmq"
	smtp_adapter "github.com/louissosthenes9/campus-stay-api/internal/adapters/smtp"
	"github.com/louissosthenes9/campus-stay-api/internal/configs"
	"github.com/louissosthenes9/campus-stay-api/internal/constants"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/louissosthenes9/campus-stay-api/internal/core/usecase"
	"github.com/louissosthenes9/campus-stay-api/pkg/rabbitmq/rabbitmq_common"
	"github.com/louissosthenes9/campus-stay-api/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// MailWorker забирает письма из очереди verification_emails и отправляет их по SMTP
type MailWorker struct {
	config      *configs.AppConfig
	connManager *rabbitmq_common.ConnectionManager
	listener    *rabbitmq_adapter.EmailConsumerAdapter

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewMailWorker() (*MailWorker, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}
	if err := appConfig.ValidateSMTP(); err != nil {
		return nil, err
	}

	baseLogger, fluentClient, err := newBaseLogger(appConfig, "mail-worker")
	if err != nil {
		return nil, err
	}
	workerLogger := baseLogger.WithFields(port.Fields{"component": "mail_worker"})

	sender, err := smtp_adapter.NewSender(smtp_adapter.Config{
		Host:     appConfig.SMTP.Host,
		Port:     appConfig.SMTP.Port,
		Username: appConfig.SMTP.Username,
		Password: appConfig.SMTP.Password,
		From:     appConfig.SMTP.From,
		Timeout:  appConfig.SMTP.Timeout,
	})
	if err != nil {
		workerLogger.Error("Failed to create SMTP sender", err, nil)
		closeFluent(fluentClient)
		return nil, err
	}
	deliverUC := usecase.NewDeliverVerificationEmailUseCase(sender)

	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		workerLogger.Error("Failed to create connection manager", err, nil)
		closeFluent(fluentClient)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}

	consumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:                 rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:              constants.QueueVerificationEmails,
		DeclareQueue:           true,
		DurableQueue:           true,
		ExchangeNameForBind:    constants.ExchangeNotifications,
		DeclareExchangeForBind: true,
		ExchangeTypeForBind:    constants.ExchangeNotificationsType,
		DurableExchangeForBind: true,
		RoutingKeyForBind:      constants.RoutingKeyVerificationEmail,
		PrefetchCount:          1,
		ConsumerTag:            "verification-email-sender",

		EnableRetryMechanism: true,
		RetryExchange:        constants.RetryExchangeVerificationEmails,
		RetryQueue:           constants.RetryQueueVerificationEmails,
		RetryTTL:             constants.RetryTTLVerificationEmails,

		FinalDLXExchange:   constants.FinalDLXExchange,
		FinalDLQ:           constants.FinalDLQ,
		FinalDLQRoutingKey: constants.FinalDLQRoutingKey,
		MaxRetries:         constants.MaxEmailRetries,
	}
	listener, err := rabbitmq_adapter.NewEmailConsumerAdapter(consumerCfg, deliverUC, baseLogger, connManager)
	if err != nil {
		workerLogger.Error("Failed to create verification email listener", err, nil)
		connManager.Close()
		closeFluent(fluentClient)
		return nil, err
	}
	workerLogger.Info("Verification email listener initialized.", nil)

	return &MailWorker{
		config:       appConfig,
		connManager:  connManager,
		listener:     listener,
		fluentClient: fluentClient,
		logger:       workerLogger,
	}, nil
}

// Run слушает очередь до сигнала остановки или ошибки потребителя
func (w *MailWorker) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	defer func() {
		w.logger.Info("Shutdown sequence initiated...", nil)
		cancelApp()
		wg.Wait()

		if err := w.listener.Close(); err != nil {
			w.logger.Error("Error closing verification email listener", err, nil)
		}
		if err := w.connManager.Close(); err != nil {
			w.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		w.logger.Info("Mail worker shut down gracefully.", nil)
		closeFluent(w.fluentClient)
	}()

	errorsCh := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.logger.Info("Starting listener...", port.Fields{"queue": constants.QueueVerificationEmails})
		if err := w.listener.Start(appCtx); err != nil {
			w.logger.Error("Listener stopped with an unexpected error", err, nil)
			errorsCh <- err
			return
		}
		w.logger.Info("Listener stopped gracefully due to context cancellation.", nil)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case receivedSignal := <-quit:
		w.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-errorsCh:
		return fmt.Errorf("verification email listener: %w", err)
	}
}
