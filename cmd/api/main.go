package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/adapters"
	"github.com/gustavo-devfull/fabricas-sub000/internal/adapters/storage"
	"github.com/gustavo-devfull/fabricas-sub000/internal/auth"
	"github.com/gustavo-devfull/fabricas-sub000/internal/comments"
	"github.com/gustavo-devfull/fabricas-sub000/internal/email"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	"github.com/gustavo-devfull/fabricas-sub000/internal/exports"
	"github.com/gustavo-devfull/fabricas-sub000/internal/factories"
	apphttp "github.com/gustavo-devfull/fabricas-sub000/internal/http"
	"github.com/gustavo-devfull/fabricas-sub000/internal/http/router"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports"
	"github.com/gustavo-devfull/fabricas-sub000/internal/notification"
	"github.com/gustavo-devfull/fabricas-sub000/internal/quotes"
	"github.com/gustavo-devfull/fabricas-sub000/internal/scheduler"
	"github.com/gustavo-devfull/fabricas-sub000/migrations"
	"github.com/gustavo-devfull/fabricas-sub000/platform/cache"
	"github.com/gustavo-devfull/fabricas-sub000/platform/config"
	"github.com/gustavo-devfull/fabricas-sub000/platform/db"
	"github.com/gustavo-devfull/fabricas-sub000/platform/logger"
	"github.com/gustavo-devfull/fabricas-sub000/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

const storageBucketEnsureErrPrefix = "failed to ensure storage bucket exists: "
const storageBucketEnsureErrMsg = "failed to ensure storage bucket exists"

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error(storageBucketEnsureErrMsg, "error", err, "bucket", bucket)
		panic(storageBucketEnsureErrPrefix + err.Error())
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	exportScheduler, closeScheduler := initExportScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	var sender email.Sender
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(cfg)
		log.Info("email sender initialized", "host", cfg.SMTPHost)
	} else {
		sender = email.NewNoopSender(log)
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for comment images and generated spreadsheets (MinIO)
	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	ensureBucket(ctx, log, storageSvc, "quote-exports", cfg.GetMinioBucketExports())
	ensureBucket(ctx, log, storageSvc, "comment-images", cfg.GetMinioBucketCommentImages())
	log.Info(
		"storage service initialized",
		"exportsBucket", cfg.GetMinioBucketExports(),
		"commentImagesBucket", cfg.GetMinioBucketCommentImages(),
	)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(sender, log)
	notificationModule.RegisterHandlers(eventBus)

	// Initialize domain modules
	authModule := auth.NewModule(pool, cfg, val)
	factoriesModule := factories.NewModule(pool, val)
	quotesModule := quotes.NewModule(pool, eventBus, val)

	commentsModule := comments.NewModule(pool, val)
	commentsModule.SetStorage(storageSvc, cfg.GetMinioBucketCommentImages())
	commentsModule.SetEventBus(eventBus)

	// The imports view reads quotes and factories through ports so the
	// module never imports its collaborators directly.
	quoteReader := adapters.NewQuoteReader(quotesModule.Service())
	orderWriter := adapters.NewQuoteOrderWriter(quotesModule.Repository())
	factoryReader := adapters.NewFactoryReader(factoriesModule.Service())
	importsModule := imports.NewModule(pool, quoteReader, orderWriter, factoryReader, log, val)
	importsModule.SetEventBus(eventBus)
	importsModule.SetCommentCounter(adapters.NewCommentCounter(commentsModule.Service()))

	if viewCache := initViewCache(cfg, log); viewCache != nil {
		importsModule.SetCache(viewCache, cfg.GetCacheTTL())
	}

	exportsModule := exports.NewModule(pool, log, val)
	exportsModule.SetStorage(storageSvc, cfg.GetMinioBucketExports())
	exportsModule.SetEventBus(eventBus)
	if exportScheduler != nil {
		exportsModule.SetScheduler(exportScheduler)
	}

	// Completed-export emails need a presigned link for the workbook
	notificationModule.SetExportDownloadResolver(exportsModule.Service())

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			factoriesModule,
			quotesModule,
			importsModule,
			commentsModule,
			exportsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initExportScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; spreadsheet exports disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize export scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initViewCache(cfg config.CacheConfig, log *logger.Logger) cache.Cache {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; aggregated view caching disabled")
		return nil
	}

	viewCache, err := cache.NewRedis(cfg.GetRedisURL(), "imports")
	if err != nil {
		log.Error("failed to initialize view cache", "error", err)
		return nil
	}

	return viewCache
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
