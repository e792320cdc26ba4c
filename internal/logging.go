package internal

import (
	"fmt"

	logger_adapter "github.com/louissosthenes9/campus-stay-api/internal/adapters/logger"
	"github.com/louissosthenes9/campus-stay-api/internal/configs"
	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	fluentlogger "github.com/louissosthenes9/campus-stay-api/pkg/fluent_logger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// newBaseLogger собирает stdout-логгер и, если включен, Fluent Bit.
// Возвращенный fluent-клиент нужно закрыть при остановке процесса.
func newBaseLogger(appConfig *configs.AppConfig, component string) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
		"process":      component,
	})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})
	return baseLogger, fluentClient, nil
}

func closeFluent(fluentClient *fluent.Fluent) {
	if fluentClient == nil {
		return
	}
	if err := fluentClient.Close(); err != nil {
		// fluent может быть уже недоступен, пишем в stdout
		fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
	}
}
