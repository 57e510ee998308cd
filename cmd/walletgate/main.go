package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	walletgate "github.com/DanielPopoola/walletgate"
	"github.com/DanielPopoola/walletgate/internal/application/services"
	"github.com/DanielPopoola/walletgate/internal/config"
	"github.com/DanielPopoola/walletgate/internal/infrastructure/authorizer"
	"github.com/DanielPopoola/walletgate/internal/infrastructure/cache"
	"github.com/DanielPopoola/walletgate/internal/infrastructure/notifier"
	"github.com/DanielPopoola/walletgate/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/walletgate/internal/infrastructure/security"
	"github.com/DanielPopoola/walletgate/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/walletgate/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/walletgate/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting walletgate service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationsFS, err := fs.Sub(walletgate.MigrationsFS, "migrations")
	if err != nil {
		logger.Error("failed to open migrations", "error", err)
		os.Exit(1)
	}
	if err := postgres.RunMigrations(cfg.Database.URL(), migrationsFS, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	auditRepo := postgres.NewAuditLogRepository(db)
	coordinator := postgres.NewTransactionCoordinator(db)

	balanceCache := cache.NewBalanceCache(time.Hour, 10*time.Minute)
	hasher := security.NewBcryptHasher()

	authorizerClient := authorizer.NewClient(cfg.Authorizer, logger)

	notifierClient := notifier.NewClient(cfg.Notifier)
	dispatcher := notifier.NewDispatcher(
		notifierClient,
		cfg.Notifier.QueueSize,
		cfg.Notifier.MaxAttempts,
		cfg.Notifier.Backoff,
		logger,
	)

	auditService := services.NewAuditService(auditRepo, logger)
	balanceService := services.NewBalanceService(userRepo, transactionRepo, balanceCache, logger)
	userService := services.NewUserService(userRepo, hasher, logger)
	transferService := services.NewTransferService(
		userRepo,
		balanceService,
		authorizerClient,
		auditService,
		coordinator,
		dispatcher,
		logger,
	)

	h := handlers.NewHandlers(transferService, userService, balanceService, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestMeta()(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	reconciler := worker.NewAuditReconciler(
		auditRepo,
		cfg.Worker.Interval,
		cfg.Worker.MaxAge,
		cfg.Worker.BatchSize,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go dispatcher.Start(workerCtx)
	go reconciler.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
