package reconciler

import (
	"context"
	"fmt"
	"time"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/event"
	"github.com/ndifor/vitrine/internal/logger"
	"github.com/ndifor/vitrine/internal/slot"
)

// Repository is the read surface the reconciler needs.
type Repository interface {
	// ListLiveSlots returns every slot currently hosting a live listing.
	ListLiveSlots(ctx context.Context) ([]domain.Slot, error)
}

// Publisher is the event-publishing surface the reconciler needs.
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Service keeps live slots consistent with wall-clock time. Each Run is one
// sweep: fetch live slots, expire the ones past their end time through the
// transition guard, report the outcome. Runs are idempotent (expiry is
// governed by the time precondition, not a one-shot flag) and safe to
// overlap with each other and with administrative calls; the store's
// conditional write is the only synchronization point.
type Service interface {
	Run(ctx context.Context) (*domain.ReconcileReport, error)
}

type service struct {
	repo      Repository
	guard     slot.Service
	publisher Publisher
	nowFn     func() time.Time
}

// NewService creates a reconciler. publisher may be nil in tests.
func NewService(repo Repository, guard slot.Service, publisher Publisher) Service {
	return &service{
		repo:      repo,
		guard:     guard,
		publisher: publisher,
		nowFn:     time.Now,
	}
}

func (s *service) Run(ctx context.Context) (*domain.ReconcileReport, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	live, err := s.repo.ListLiveSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list live slots: %w", err)
	}

	now := s.nowFn()
	report := &domain.ReconcileReport{}
	for _, sl := range live {
		report.Processed++
		if !sl.LiveExpired(now) {
			continue
		}

		// One bad slot never aborts the sweep.
		_, err := s.guard.Apply(ctx, sl.ID, slot.Event{Type: slot.EventExpireListing, Source: domain.SourceReconciler})
		if err != nil {
			log.Error("failed to expire listing",
				"slot_id", sl.ID,
				"end_time", sl.Live.EndTime,
				"error", err)
			report.Failures = append(report.Failures, domain.ReconcileFailure{
				SlotID: sl.ID,
				Reason: err.Error(),
			})
			continue
		}
		report.Updated++
	}

	duration := time.Since(start)
	log.Info("reconcile pass complete",
		"processed", report.Processed,
		"updated", report.Updated,
		"failed", len(report.Failures),
		"duration_ms", duration.Milliseconds())

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewReconcileCompletedEvent(*report, duration))
	}

	return report, nil
}
