package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ndifor/vitrine/internal/logger"
)

// AuditCleanupWorker schedules the audit retention job once a day at
// CleanupHour in West Africa Time, handing execution to the shared pool.
type AuditCleanupWorker struct {
	pool     *Pool
	job      Job
	timer    *time.Timer
	shutdown chan struct{}
	mu       sync.Mutex
}

// NewAuditCleanupWorker creates a new AuditCleanupWorker
func NewAuditCleanupWorker(pool *Pool, job Job) *AuditCleanupWorker {
	return &AuditCleanupWorker{
		pool:     pool,
		job:      job,
		shutdown: make(chan struct{}),
	}
}

// Start schedules the first cleanup
func (w *AuditCleanupWorker) Start() {
	w.scheduleNext()
}

// scheduleNext calculates the time until the next cleanup window and arms
// the timer for it.
func (w *AuditCleanupWorker) scheduleNext() {
	duration := timeUntilNextCleanup()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling to prevent "tight loop" rescheduling caused by early triggers
	if duration > 1*time.Hour {
		// Stage 1: Long-range (Standby). Wake up 45 minutes before the window.
		waitDuration := duration - 45*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		nextCheck := time.Now().UTC().Add(waitDuration)
		log.Info(LogMsgCleanupStandby, "next_check_at", nextCheck)
		return
	}

	// Stage 2: Final approach. Schedule the actual cleanup.
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// Jitter protection: if the timer triggered early (jitter > 10s),
		// simply reschedule for the remaining time.
		rem := timeUntilNextCleanup()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.enqueueCleanup()
		w.scheduleNext()
	})
	w.mu.Unlock()

	nextCleanup := time.Now().UTC().Add(duration)
	log.Info(LogMsgCleanupApproach, "next_cleanup_at", nextCleanup)
}

// enqueueCleanup hands the retention job to the pool
func (w *AuditCleanupWorker) enqueueCleanup() {
	log := logger.FromContext(context.Background())
	w.pool.Enqueue(w.job)
	log.Info(LogMsgCleanupEnqueued)
}

// Shutdown cancels the pending timer. In-flight cleanup runs belong to the
// pool and are waited on by Pool.Stop.
func (w *AuditCleanupWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		log.Info(LogMsgCleanupCancelled)
	}
	w.mu.Unlock()

	log.Info(LogMsgCleanupShutdownDone)
	return nil
}

// timeUntilNextCleanup calculates the duration until the next cleanup window
// (CleanupHour:00 WAT)
func timeUntilNextCleanup() time.Duration {
	location := time.FixedZone("WAT", 1*60*60)
	now := time.Now().In(location)
	next := time.Date(
		now.Year(), now.Month(), now.Day(),
		CleanupHour, 0, 0, 0, location,
	)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
