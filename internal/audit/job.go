package audit

import (
	"context"
	"time"

	"github.com/ndifor/vitrine/internal/event"
	"github.com/ndifor/vitrine/internal/logger"
)

// Publisher delivers cleanup completion events with retry backing
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// CleanupJob removes transition records past the retention period
type CleanupJob struct {
	service       Service
	retentionDays int
	publisher     Publisher
}

// NewCleanupJob creates a new cleanup job. The publisher may be nil when no
// completion signal is wanted.
func NewCleanupJob(service Service, retentionDays int, publisher Publisher) *CleanupJob {
	return &CleanupJob{
		service:       service,
		retentionDays: retentionDays,
		publisher:     publisher,
	}
}

// Process executes one cleanup pass
func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCleanupJobStarting, "retention_days", j.retentionDays)

	start := time.Now()
	count, err := j.service.CleanupOldTransitions(ctx, j.retentionDays)
	duration := time.Since(start)

	if err != nil {
		log.Error(LogMsgCleanupJobFailed, "error", err, "duration", duration)
		return err
	}

	log.Info(LogMsgCleanupJobCompleted, "removed", count, "duration", duration)

	if j.publisher != nil {
		j.publisher.PublishWithRetry(ctx, event.NewAuditCleanupCompleteEvent(time.Now(), count))
	}
	return nil
}
