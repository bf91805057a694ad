package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthbot/internal/booking"
	"healthbot/internal/catalog"
	"healthbot/internal/config"
	"healthbot/internal/dispatch"
	"healthbot/internal/flow"
	"healthbot/internal/handler"
	"healthbot/internal/middleware"
	"healthbot/internal/repository/postgres"
	"healthbot/internal/service"
	"healthbot/internal/session"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Health Assistant Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	logger.Info("Catalog loaded", zap.String("version", cat.Version))

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	accountRepo := postgres.NewAccountRepo(db)
	reportRepo := postgres.NewReportRepo(db)

	// Initialize services
	var chat service.Asker
	if cfg.ReportsChatURL != "" {
		chat = service.NewChatClient(cfg.ReportsChatURL, cfg.ReportsChatTimeout)
	}
	authService := service.NewAuthService(accountRepo, logger)
	reportService := service.NewReportService(reportRepo, chat, logger)

	store := session.NewMemoryStore()
	retentionService := service.NewRetentionService(reportRepo, store, cfg.SessionIdleTTL, logger)

	// Initialize flow engine
	simulator := booking.NewSimulator(cat)
	router, err := flow.NewRouter(store, cat, authService, reportService, simulator, logger,
		flow.WithProgressScale(cfg.ProgressDelayScale),
	)
	if err != nil {
		logger.Fatal("Failed to create router", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := dispatch.NewScheduler(ctx, dispatch.Options{
		Workers:   cfg.Workers,
		QueueSize: cfg.UserQueueSize,
	}, logger)

	// Initialize Telegram bot. Updates are taken in order, the scheduler
	// provides the concurrency.
	bot, err := tele.NewBot(tele.Settings{
		Token:       cfg.BotToken,
		Poller:      &tele.LongPoller{Timeout: 10 * time.Second},
		Synchronous: true,
		OnError: func(err error, c tele.Context) {
			logger.Error("Telegram handler error", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	limiter := middleware.NewLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	bot.Use(middleware.Recover(logger), middleware.RateLimit(limiter, logger))

	// Initialize handler
	h := handler.NewHandler(bot, router, scheduler, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	go runCleanupJob(ctx, retentionService, limiter, cfg.SessionIdleTTL, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown: stop taking updates, let queued events finish
	bot.Stop()
	scheduler.Close()
	cancel()

	logger.Info("Bot stopped gracefully")
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch err {
	case nil:
		logger.Info("Migrations applied successfully")
	case migrate.ErrNoChange:
		logger.Info("No new migrations to apply")
	default:
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runCleanupJob prunes idle sessions hourly and old reports daily
func runCleanupJob(ctx context.Context, retention *service.RetentionService, limiter *middleware.Limiter, idleTTL time.Duration, logger *zap.Logger) {
	if err := retention.CleanupOldData(ctx); err != nil {
		logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	sessionTicker := time.NewTicker(time.Hour)
	defer sessionTicker.Stop()
	reportTicker := time.NewTicker(24 * time.Hour)
	defer reportTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-sessionTicker.C:
			retention.PruneSessions()
			limiter.Prune(idleTTL)
		case <-reportTicker.C:
			logger.Info("Running scheduled cleanup")
			if err := retention.CleanupOldData(ctx); err != nil {
				logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		}
	}
}
