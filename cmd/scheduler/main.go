package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/adapters"
	"github.com/gustavo-devfull/fabricas-sub000/internal/adapters/storage"
	"github.com/gustavo-devfull/fabricas-sub000/internal/email"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	"github.com/gustavo-devfull/fabricas-sub000/internal/exports"
	"github.com/gustavo-devfull/fabricas-sub000/internal/factories"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports"
	"github.com/gustavo-devfull/fabricas-sub000/internal/notification"
	"github.com/gustavo-devfull/fabricas-sub000/internal/quotes"
	"github.com/gustavo-devfull/fabricas-sub000/internal/scheduler"
	"github.com/gustavo-devfull/fabricas-sub000/platform/config"
	"github.com/gustavo-devfull/fabricas-sub000/platform/db"
	"github.com/gustavo-devfull/fabricas-sub000/platform/logger"
	"github.com/gustavo-devfull/fabricas-sub000/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	var sender email.Sender
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(cfg)
	} else {
		sender = email.NewNoopSender(log)
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	val := validator.New()

	// Worker-side view wiring (no HTTP handlers required).
	factoriesModule := factories.NewModule(pool, val)
	quotesModule := quotes.NewModule(pool, eventBus, val)

	quoteReader := adapters.NewQuoteReader(quotesModule.Service())
	orderWriter := adapters.NewQuoteOrderWriter(quotesModule.Repository())
	factoryReader := adapters.NewFactoryReader(factoriesModule.Service())
	importsModule := imports.NewModule(pool, quoteReader, orderWriter, factoryReader, log, val)

	exportsRepo := exports.NewRepository(pool)
	exportsService := exports.NewService(exportsRepo, log)
	exportsService.SetStorage(storageSvc, cfg.GetMinioBucketExports())

	// Notify requesters when their workbook is ready (or generation failed)
	notificationModule := notification.New(sender, log)
	notificationModule.RegisterHandlers(eventBus)
	notificationModule.SetExportDownloadResolver(exportsService)

	generator := exports.NewGenerator(exportsRepo, importsModule.Service(), log)
	generator.SetStorage(storageSvc, cfg.GetMinioBucketExports())
	generator.SetEventBus(eventBus)

	worker, err := scheduler.NewWorker(cfg, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}
	worker.HandleFunc(scheduler.TaskGenerateSpreadsheet, generator.HandleTask)

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
