package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	root "loan-offers"
	"loan-offers/internal/api"
	mw "loan-offers/internal/api/middleware"
	"loan-offers/internal/batch"
	"loan-offers/internal/config"
	"loan-offers/internal/domain/customer"
	"loan-offers/internal/domain/loanoffer"
	"loan-offers/internal/event"
	"loan-offers/internal/infrastructure/database/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

const (
	defaultSnapshotSchedule = "*/15 * * * *"
	defaultSnapshotTimeout  = 30 * time.Second
)

type cronJob interface {
	Run(ctx context.Context) error
}

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the portfolio snapshot scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	dbPool, err := initializeDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDatabase(dbPool, logger)

	redisClient, err := initializeRedisClient(ctx, cfg, logger)
	if err != nil {
		return err
	}
	rabbitConn, publisher := initializePublisher(cfg, logger)

	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	customerService := customer.NewCustomerService(customerRepo, publisher, logger)
	loanOfferService := loanoffer.NewLoanOfferService(postgres.NewLoanOfferRepository(dbPool, logger), customerService, publisher, logger)

	limiterCtx, stopLimiter := context.WithCancel(ctx)
	defer stopLimiter()

	router := api.SetupRouter(api.Dependencies{
		CustomerService:  customerService,
		LoanOfferService: loanOfferService,
		RateLimiter:      initializeRateLimiter(limiterCtx, cfg, redisClient, logger),
		DB:               dbPool,
	}, cfg, logger)

	snapshotJob := batch.NewPortfolioSnapshotJob(customerRepo, loanOfferService, logger)
	cronScheduler := startBatchJobs(cfg, logger, snapshotJob)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitConn, redisClient, shutdownChan, serverErrors, logger)
	return nil
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		db := postgres.OpenSQLDB(dbPool)
		defer db.Close()

		migrator, err := postgres.NewMigrator(db, root.Migrations, logger)
		if err == nil {
			err = migrator.Up(ctx)
		}
		if err != nil {
			dbPool.Close()
			logger.Error("Failed to apply migrations on startup", "error", err)
			return nil, err
		}
	}
	return dbPool, nil
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializeRedisClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		logger.Info("Redis disabled, rate limiting stays in memory.")
		return nil, nil
	}
	if cfg.Redis.Addr == "" {
		return nil, errors.New("redis is enabled but redis.addr is not configured")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		logger.Error("Failed to connect to Redis", "error", err, "addr", cfg.Redis.Addr)
		return nil, fmt.Errorf("could not connect to redis at %s: %w", cfg.Redis.Addr, err)
	}

	logger.Info("Redis client connected.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb, nil
}

func initializeRateLimiter(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) *mw.RateLimiterMiddleware {
	if redisClient != nil {
		return mw.NewRedisRateLimiterMiddleware(redisClient, cfg.Server.RateLimit, logger)
	}
	return mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger)
}

// initializePublisher falls back to a no-op publisher when RabbitMQ is
// disabled or unreachable; events never block the API.
func initializePublisher(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, event.EventPublisher) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, domain events are not published.")
		return nil, event.NoopPublisher{}
	}

	conn, err := event.Connect(cfg.RabbitMQ, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, domain events are not published", "error", err)
		return nil, event.NoopPublisher{}
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to set up RabbitMQ publisher, domain events are not published", "error", err)
		_ = conn.Close()
		return nil, event.NoopPublisher{}
	}
	return conn, publisher
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection, redisClient *redis.Client,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason, serverDone := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	if !serverDone {
		shutdownHTTPServer(srv, serverErrors, logger)
	}
	closeRabbitMQConnection(rabbitConn, logger)
	closeRedisClient(redisClient, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) (string, bool) {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String(), false
	case err := <-serverErrors:
		if err != nil {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			return "server error", true
		}
		logger.Info("Server goroutine finished before signal.")
		return "server exited", true
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	switch {
	case rabbitConn == nil:
		logger.Info("RabbitMQ connection was not established, skipping close.")
	case rabbitConn.IsClosed():
		logger.Info("RabbitMQ connection already closed, skipping close.")
	default:
		logger.Info("Closing RabbitMQ connection...")
		if err := rabbitConn.Close(); err != nil {
			logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
		} else {
			logger.Info("RabbitMQ connection closed.")
		}
	}
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		logger.Info("Redis client was not initialized, skipping close.")
		return
	}
	logger.Info("Closing Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis client connection gracefully", "error", err)
	} else {
		logger.Info("Redis client connection closed.")
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, snapshotJob cronJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.PortfolioSnapshotSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultSnapshotSchedule
		logger.Warn("Portfolio snapshot schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.PortfolioSnapshotTimeout
	if jobTimeout <= 0 {
		jobTimeout = defaultSnapshotTimeout
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "PortfolioSnapshot")
		jobLogger.Info("Cron triggered: Running portfolio snapshot job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := snapshotJob.Run(ctx); runErr != nil {
			jobLogger.Error("Portfolio snapshot job finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule portfolio snapshot job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled portfolio snapshot job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
