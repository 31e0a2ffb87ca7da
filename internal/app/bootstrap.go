package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/inventory_consumer/config"
	"github.com/Gunvolt24/inventory_consumer/internal/kafka"
	"github.com/Gunvolt24/inventory_consumer/internal/ports"
	"github.com/Gunvolt24/inventory_consumer/internal/repo/postgres"
	rest "github.com/Gunvolt24/inventory_consumer/internal/transport/http"
	"github.com/Gunvolt24/inventory_consumer/internal/usecase"
	"github.com/Gunvolt24/inventory_consumer/pkg/logger"
	"github.com/Gunvolt24/inventory_consumer/pkg/metrics"
	"github.com/Gunvolt24/inventory_consumer/pkg/telemetry"
	"github.com/gin-gonic/gin"
)

// App — собранный воркер: консьюмер inventory-updates и служебный HTTP.
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // служебный HTTP-сервер (ping/status/metrics)
	KafkaConsumer   ports.MessageConsumer // воркер приёма сообщений
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости. Любая ошибка сборки фатальна:
// повторов здесь нет, перезапуск — забота супервизора процесса.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// closers — освобождение уже созданных ресурсов в обратном порядке.
	var closers []func()
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		_ = cleanupLogger()
	}

	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, telemetry.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			otelServiceName = cfg.Tracing.ServiceName
			closers = append(closers, func() {
				if err := shutdownTrace(context.Background()); err != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", err)
				}
			})
		}
	}

	// Хранилище — необязательная точка расширения.
	var (
		store   ports.InventoryStore
		counter interface {
			Count(ctx context.Context) (int64, error)
		}
	)
	if cfg.Postgres.Enabled {
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
				release()
				return nil, func() {}, fmt.Errorf("migrate postgres: %w", err)
			}
		}

		pool, pErr := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if pErr != nil {
			release()
			return nil, func() {}, pErr
		}
		closers = append(closers, pool.Close)

		repo := postgres.NewInventoryRepository(pool)
		store, counter = repo, repo
		logg.Infof(ctx, "postgres store enabled max_conns=%d", cfg.Postgres.MaxConns)
	}

	service := usecase.NewInventoryService(store)

	consumer, err := kafka.NewConsumer(&kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.Topic,
		GroupID:        cfg.Kafka.GroupID,
		StartOffset:    cfg.Kafka.StartOffset,
		AckPolicy:      cfg.Kafka.AckPolicy,
		PollInterval:   cfg.Kafka.PollInterval,
		FetchTimeout:   cfg.Kafka.FetchTimeout,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
	}, service, logg)
	if err != nil {
		release()
		return nil, func() {}, err
	}
	closers = append(closers, func() {
		if err := consumer.Close(); err != nil {
			logg.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	})

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	handler := rest.NewHandler(consumer, counter, cfg.Kafka.Topic, cfg.Kafka.GroupID, logg, cfg.HTTP.ReadTimeout)
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           rest.NewRouter(handler, otelServiceName),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		KafkaConsumer:   consumer,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	return app, Cleanup(release), nil
}

// Run — запускает консьюмера и HTTP-сервер; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Консьюмер завершается сам по отмене контекста; nil до отмены — тоже повод остановиться.
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		a.Logger.Infof(ctx, "kafka consumer starting")
		if err := a.KafkaConsumer.Run(ctx); err != nil {
			errCh <- fmt.Errorf("kafka consumer: %w", err)
		}
	}()

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case <-consumerDone:
		a.Logger.Warnf(ctx, "kafka consumer stopped unexpectedly")
	case err := <-errCh:
		a.Logger.Warnf(ctx, "background error: %v", err)
		runErr = err
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Close прерывает ожидающий fetch, если консьюмер ещё в цикле.
	if err := a.KafkaConsumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
	}

	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		a.Logger.Warnf(ctx, "kafka consumer did not stop within %s", gt)
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
