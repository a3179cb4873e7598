package admin

import (
	"context"
	"fmt"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/logger"
	"github.com/ndifor/vitrine/internal/slot"
)

// Operation names an administrative action, usable in single and batch form.
type Operation string

const (
	OpApproveDraft     Operation = "approve"
	OpRejectDraft      Operation = "reject"
	OpSetMaintenance   Operation = "set-maintenance"
	OpClearMaintenance Operation = "clear-maintenance"
	OpRemoveProduct    Operation = "remove"
)

// ReasonSkippedCancelled marks batch items not attempted after cancellation.
const ReasonSkippedCancelled = "batch cancelled before this slot was attempted"

// Event returns the transition the operation requests.
func (o Operation) Event() (slot.EventType, bool) {
	switch o {
	case OpApproveDraft:
		return slot.EventApproveDraft, true
	case OpRejectDraft:
		return slot.EventRejectDraft, true
	case OpSetMaintenance:
		return slot.EventSetMaintenance, true
	case OpClearMaintenance:
		return slot.EventClearMaintenance, true
	case OpRemoveProduct:
		return slot.EventRemoveProduct, true
	}
	return "", false
}

// Service exposes the administrative operations used by human reviewers,
// each a thin wrapper over the transition guard. Batch calls process an
// ordered id list with per-item independence: one slot's failure never
// blocks the rest, and cancellation between items leaves committed items
// committed while the remainder is reported as skipped.
type Service interface {
	ApproveDraft(ctx context.Context, slotID int) (*domain.Slot, error)
	RejectDraft(ctx context.Context, slotID int) (*domain.Slot, error)
	SetMaintenance(ctx context.Context, slotID int) (*domain.Slot, error)
	ClearMaintenance(ctx context.Context, slotID int) (*domain.Slot, error)
	RemoveProduct(ctx context.Context, slotID int) (*domain.Slot, error)

	// Batch applies one operation to each id in order. The report is always
	// returned when processing ran; the error is domain.ErrBatchPartialFailure
	// when the outcomes are mixed.
	Batch(ctx context.Context, op Operation, slotIDs []int) (*domain.BatchReport, error)
}

type service struct {
	guard slot.Service
}

// NewService creates an admin workflow over the transition guard.
func NewService(guard slot.Service) Service {
	return &service{guard: guard}
}

func (s *service) ApproveDraft(ctx context.Context, slotID int) (*domain.Slot, error) {
	return s.guard.Apply(ctx, slotID, slot.Event{Type: slot.EventApproveDraft, Source: domain.SourceAdmin})
}

func (s *service) RejectDraft(ctx context.Context, slotID int) (*domain.Slot, error) {
	return s.guard.Apply(ctx, slotID, slot.Event{Type: slot.EventRejectDraft, Source: domain.SourceAdmin})
}

func (s *service) SetMaintenance(ctx context.Context, slotID int) (*domain.Slot, error) {
	return s.guard.Apply(ctx, slotID, slot.Event{Type: slot.EventSetMaintenance, Source: domain.SourceAdmin})
}

func (s *service) ClearMaintenance(ctx context.Context, slotID int) (*domain.Slot, error) {
	return s.guard.Apply(ctx, slotID, slot.Event{Type: slot.EventClearMaintenance, Source: domain.SourceAdmin})
}

func (s *service) RemoveProduct(ctx context.Context, slotID int) (*domain.Slot, error) {
	return s.guard.Apply(ctx, slotID, slot.Event{Type: slot.EventRemoveProduct, Source: domain.SourceAdmin})
}

func (s *service) Batch(ctx context.Context, op Operation, slotIDs []int) (*domain.BatchReport, error) {
	log := logger.FromContext(ctx)

	evType, ok := op.Event()
	if !ok {
		return nil, fmt.Errorf("%w: unknown operation %q", domain.ErrInvalidInput, op)
	}
	if len(slotIDs) == 0 {
		return nil, fmt.Errorf("%w: batch requires at least one slot id", domain.ErrInvalidInput)
	}
	if len(slotIDs) > domain.MaxBatchSlots {
		return nil, fmt.Errorf("%w: batch exceeds %d slots", domain.ErrInvalidInput, domain.MaxBatchSlots)
	}

	report := &domain.BatchReport{
		Outcomes: make([]domain.BatchItemOutcome, 0, len(slotIDs)),
	}

	cancelled := false
	for _, id := range slotIDs {
		// Cancellation is only honored between items, never mid-item.
		if !cancelled && ctx.Err() != nil {
			cancelled = true
			log.Warn("batch cancelled",
				"operation", op,
				"completed", len(report.Outcomes),
				"remaining", len(slotIDs)-len(report.Outcomes))
		}
		if cancelled {
			report.Outcomes = append(report.Outcomes, domain.BatchItemOutcome{
				SlotID: id,
				Status: domain.BatchOutcomeSkipped,
				Reason: ReasonSkippedCancelled,
			})
			continue
		}

		updated, err := s.guard.Apply(ctx, id, slot.Event{Type: evType, Source: domain.SourceAdmin})
		if err != nil {
			report.Outcomes = append(report.Outcomes, domain.BatchItemOutcome{
				SlotID: id,
				Status: domain.BatchOutcomeFailure,
				Reason: err.Error(),
			})
			continue
		}
		report.Outcomes = append(report.Outcomes, domain.BatchItemOutcome{
			SlotID: id,
			Status: domain.BatchOutcomeSuccess,
			Slot:   updated,
		})
	}

	report.Succeeded, report.Failed, report.Skipped = report.Counts()
	log.Info("batch complete",
		"operation", op,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped", report.Skipped)

	if report.Failed > 0 && report.Succeeded > 0 {
		return report, domain.ErrBatchPartialFailure
	}
	return report, nil
}
