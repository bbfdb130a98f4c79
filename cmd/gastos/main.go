package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"gastos/internal/config"
	"gastos/internal/core"
	"gastos/internal/events"
	apphttp "gastos/internal/http"
	"gastos/internal/log"
	"gastos/internal/services"
	"gastos/internal/store"
	"gastos/internal/store/memory"
	"gastos/internal/store/sqlite"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	// Choose data backend (default: memory).
	var (
		backend store.RecordStore
		err     error
	)
	switch cfg.DataBackend {
	case "sqlite":
		backend, err = sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite store", log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		backend = memory.New()
		logger.Info("Initialized memory backend")
	}

	// Event publishing is optional; without a broker URL mutations are
	// still accepted, they just aren't announced.
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, continuing without event publishing", log.FieldError, err)
			publisher = nil
		} else {
			logger.Info("Connected to AMQP broker", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	recordService := services.NewRecordService(backend, publisher)
	defer func() {
		if err := recordService.Close(); err != nil {
			logger.Error("Failed to close record service", log.FieldError, err)
		}
	}()

	srv := apphttp.NewServer(apphttp.Options{
		Addr:        ":" + cfg.Port,
		Records:     recordService,
		Catalog:     core.DefaultCatalog(),
		Insights:    core.NewGenerator(core.DefaultRules()...),
		TrendMonths: cfg.TrendMonths,
		Logger:      logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting gastos server", "port", cfg.Port, "backend", cfg.DataBackend,
			log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
