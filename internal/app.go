package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"

	logger_adapter "equipment-search-service/internal/adapters/logger"
	"equipment-search-service/internal/adapters/rest"
	"equipment-search-service/internal/adapters/sources"
	"equipment-search-service/internal/adapters/valuation"
	"equipment-search-service/internal/configs"
	"equipment-search-service/internal/core/port"
	"equipment-search-service/internal/core/usecase"
	fluentlogger "equipment-search-service/pkg/fluentlogger"
)

type App struct {
	config    *configs.Config
	apiServer *rest.Server

	logger       port.LoggerPort
	fluentClient *fluent.Fluent // оставляем для корректного закрытия
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. АДАПТЕРЫ ИСТОЧНИКОВ ---
	descriptors := sources.BuildDescriptors(appConfig)
	adapters := make([]port.EquipmentSourcePort, 0, len(descriptors))
	for _, descriptor := range descriptors {
		adapter, err := sources.NewSourceAdapter(descriptor, appConfig.ScrapeServiceURL, appConfig.SourceTimeout)
		if err != nil {
			appLogger.Error("Failed to create source adapter", err, port.Fields{"source_id": descriptor.ID})
			return nil, fmt.Errorf("failed to create source adapter %q: %w", descriptor.ID, err)
		}
		adapters = append(adapters, adapter)
	}
	registry := sources.NewRegistry(adapters...)
	appLogger.Info("Source registry initialized", port.Fields{"sources_count": len(adapters)})

	valuationClient := valuation.NewClient(appConfig.ValuationServiceURL)

	// ИНИЦИАЛИЗАЦИЯ USE CASES (ядра бизнес-логики)
	searchEquipmentUseCase := usecase.NewSearchEquipmentUseCase(registry)
	getEquipmentDetailsUseCase := usecase.NewGetEquipmentDetailsUseCase(registry)
	estimateMarketValueUseCase := usecase.NewEstimateMarketValueUseCase(
		searchEquipmentUseCase,
		valuationClient,
		appConfig.MarketValue.LowerBandFactor,
		appConfig.MarketValue.UpperBandFactor,
	)
	findSimilarEquipmentUseCase := usecase.NewFindSimilarEquipmentUseCase(getEquipmentDetailsUseCase, searchEquipmentUseCase)

	appLogger.Info("All use cases initialized", nil)

	apiHandlers := rest.NewEquipmentHandlers(
		searchEquipmentUseCase,
		getEquipmentDetailsUseCase,
		estimateMarketValueUseCase,
		findSimilarEquipmentUseCase,
	)
	apiServer := rest.NewServer(appConfig.Port, apiHandlers, baseLogger)

	application := &App{
		config:       appConfig,
		apiServer:    apiServer,
		logger:       appLogger,
		fluentClient: fluentClient,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Port})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed to start, shutting down", err, nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
