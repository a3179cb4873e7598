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

	"github.com/ndifor/vitrine/internal/admin"
	"github.com/ndifor/vitrine/internal/audit"
	"github.com/ndifor/vitrine/internal/bootstrap"
	"github.com/ndifor/vitrine/internal/config"
	"github.com/ndifor/vitrine/internal/database"
	"github.com/ndifor/vitrine/internal/reconciler"
	"github.com/ndifor/vitrine/internal/server"
	"github.com/ndifor/vitrine/internal/slot"
	"github.com/ndifor/vitrine/internal/storefront"
	"github.com/ndifor/vitrine/internal/worker"
)

// shutdownTimeout bounds the drain of in-flight requests, worker jobs and
// buffered events once a termination signal arrives.
const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vitrine: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer dbPool.Close()

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return fmt.Errorf("initialize event system: %w", err)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	if err := bootstrap.SyncSlotPool(context.Background(), repos.Slot, cfg.SlotPoolSize); err != nil {
		return fmt.Errorf("sync slot pool: %w", err)
	}

	machine := slot.NewMachine(cfg.ListingDuration())
	slotService := slot.NewService(repos.Slot, machine, publisher, cfg.TransitionMaxRetries)
	adminService := admin.NewService(slotService)
	auditService := audit.NewService(repos.Audit)
	reconcilerService := reconciler.NewService(repos.Slot, slotService, publisher)
	storefrontService := storefront.NewService(repos.Slot, cfg.StorefrontCacheSize, cfg.StorefrontCacheTTL)

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:          eventBus,
		AuditService:      auditService,
		StorefrontService: storefrontService,
	}); err != nil {
		return fmt.Errorf("register event handlers: %w", err)
	}

	workerPool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	workerPool.Start()

	cleanupJob := audit.NewCleanupJob(auditService, cfg.AuditRetentionDays, publisher)
	cleanupWorker := worker.NewAuditCleanupWorker(workerPool, cleanupJob)
	cleanupWorker.Start()

	srv := server.NewServer(
		cfg.Port,
		cfg.APIKey,
		cfg.ReconcileAPIKey,
		cfg.TrustedProxies,
		cfg.AuditRetentionDays,
		dbPool,
		repos.Slot,
		slotService,
		adminService,
		auditService,
		reconcilerService,
		storefrontService,
	)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		CleanupWorker:      cleanupWorker,
		WorkerPool:         workerPool,
		ResilientPublisher: publisher,
	})

	return nil
}
