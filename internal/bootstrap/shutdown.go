package bootstrap

import (
	"context"
	"log/slog"

	"github.com/ndifor/vitrine/internal/event"
	"github.com/ndifor/vitrine/internal/server"
	"github.com/ndifor/vitrine/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	CleanupWorker      *worker.AuditCleanupWorker
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in the correct order:
// 1. HTTP server (stop accepting new requests)
// 2. Cleanup worker (cancel the pending retention timer)
// 3. Worker pool (wait for in-flight jobs)
// 4. Event publisher (flush pending events so the audit trail stays complete)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// Shutdown server first (stop accepting new requests)
	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	// Cancel the pending cleanup timer before draining the pool so no new
	// job lands in a stopping queue.
	if components.CleanupWorker != nil {
		if err := components.CleanupWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgCleanupWorkerShutdownFailed, "error", err)
		}
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	// Shutdown resilient publisher last to flush pending events
	slog.Info(LogMsgShuttingDownEventPublisher)
	if components.ResilientPublisher != nil {
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
