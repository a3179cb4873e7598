package slot

import (
	"context"
	"errors"
	"time"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/event"
	"github.com/ndifor/vitrine/internal/logger"
)

// DefaultMaxRetries bounds the read-compute-write cycle when a conditional
// write loses the version-token race.
const DefaultMaxRetries = 3

// Repository is the persistence surface the guard needs: point reads and a
// conditional write keyed on the version token observed at read time.
type Repository interface {
	// GetSlot returns the slot or domain.ErrSlotNotFound.
	GetSlot(ctx context.Context, id int) (*domain.Slot, error)

	// UpdateSlot persists the slot only if its stored version token still
	// equals expectedToken, returning the committed slot with its fresh
	// token. A stale token yields domain.ErrVersionConflict.
	UpdateSlot(ctx context.Context, updated domain.Slot, expectedToken time.Time) (*domain.Slot, error)
}

// Publisher is the event-publishing surface the guard needs.
type Publisher interface {
	PublishWithRetry(ctx context.Context, evt event.Event)
}

// Service is the transition guard: it makes a state machine decision durable
// at most once per observed version token. Two concurrent callers racing on
// the same slot resolve so that exactly one commits; the other observes a
// precondition failure against the fresh state or a version conflict.
type Service interface {
	// Apply runs the read-compute-conditional-write cycle for one event on
	// one slot, retrying a bounded number of times when the write loses the
	// token race. It returns the committed slot, or the typed rejection.
	Apply(ctx context.Context, slotID int, ev Event) (*domain.Slot, error)
}

type service struct {
	repo       Repository
	machine    *Machine
	publisher  Publisher
	maxRetries int
	nowFn      func() time.Time
}

// NewService creates a transition guard over the given repository and
// machine. publisher may be nil in tests; maxRetries < 1 falls back to
// DefaultMaxRetries.
func NewService(repo Repository, machine *Machine, publisher Publisher, maxRetries int) Service {
	if maxRetries < 1 {
		maxRetries = DefaultMaxRetries
	}
	return &service{
		repo:       repo,
		machine:    machine,
		publisher:  publisher,
		maxRetries: maxRetries,
		nowFn:      time.Now,
	}
}

func (s *service) Apply(ctx context.Context, slotID int, ev Event) (*domain.Slot, error) {
	log := logger.FromContext(ctx)

	var lastSeen domain.Slot
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		current, err := s.repo.GetSlot(ctx, slotID)
		if err != nil {
			return nil, err
		}
		lastSeen = *current

		next, err := s.machine.ApplyEvent(*current, ev, s.nowFn())
		if err != nil {
			// Rejections are terminal: retrying cannot make an illegal
			// event legal against the same state.
			if errors.Is(err, domain.ErrPreconditionFailed) {
				log.Info("slot transition rejected",
					"slot_id", slotID,
					"event", ev.Type,
					"error", err)
				s.publishRejection(ctx, *current, ev, rejectionReason(err))
			}
			return nil, err
		}

		updated, err := s.repo.UpdateSlot(ctx, next, current.UpdatedAt)
		if err != nil {
			if errors.Is(err, domain.ErrVersionConflict) {
				log.Warn("slot transition lost version race",
					"slot_id", slotID,
					"event", ev.Type,
					"attempt", attempt)
				continue
			}
			return nil, err
		}

		s.publishTransition(ctx, *current, *updated, ev)
		return updated, nil
	}

	log.Warn("slot transition retries exhausted",
		"slot_id", slotID,
		"event", ev.Type,
		"retries", s.maxRetries)
	s.publishRejection(ctx, lastSeen, ev, domain.ErrMsgVersionConflict)
	return nil, domain.ErrVersionConflict
}

// publishTransition emits the bus event for a committed transition. The
// published/expired events carry their listing snapshot; everything else
// shares the generic transition payload.
func (s *service) publishTransition(ctx context.Context, before, after domain.Slot, ev Event) {
	if s.publisher == nil {
		return
	}

	var evt event.Event
	switch {
	case ev.Type == EventApproveDraft && after.Live != nil:
		evt = event.NewListingPublishedEvent(after.ID, *after.Live, ev.Source)
	case ev.Type == EventExpireListing && before.Live != nil:
		evt = event.NewListingExpiredEvent(before.ID, *before.Live, ev.Source)
	default:
		evt = event.NewSlotTransitionEvent(BusEventType(ev.Type), after.ID, before.SlotStatus, after.SlotStatus, ev.Source)
	}
	s.publisher.PublishWithRetry(ctx, evt)
}

func (s *service) publishRejection(ctx context.Context, current domain.Slot, ev Event, reason string) {
	if s.publisher == nil {
		return
	}
	evt := event.NewTransitionRejectedEvent(current.ID, string(ev.Type), current.SlotStatus, reason, ev.Source)
	s.publisher.PublishWithRetry(ctx, evt)
}

func rejectionReason(err error) string {
	var pe PreconditionError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return err.Error()
}
