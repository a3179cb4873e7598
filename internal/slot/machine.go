package slot

import (
	"fmt"
	"time"

	"github.com/ndifor/vitrine/internal/domain"
)

// EventType identifies a requested slot transition.
type EventType string

const (
	EventSubmitDraft        EventType = "submit_draft"
	EventMarkReadyToPublish EventType = "mark_ready_to_publish"
	EventApproveDraft       EventType = "approve_draft"
	EventRejectDraft        EventType = "reject_draft"
	EventSetMaintenance     EventType = "set_maintenance"
	EventClearMaintenance   EventType = "clear_maintenance"
	EventRemoveProduct      EventType = "remove_product"
	EventExpireListing      EventType = "expire_listing"
)

// Event is a requested transition together with its inputs. Draft is
// required for EventSubmitDraft and ignored everywhere else. Source
// attributes the request (seller, admin, reconciler) for events and audit.
type Event struct {
	Type   EventType
	Draft  *domain.DraftListing
	Source string
}

// PreconditionError reports an event that is not legal from the slot's
// current state. No mutation has occurred when it is returned.
type PreconditionError struct {
	SlotID int
	Event  EventType
	Reason string
}

func (e PreconditionError) Error() string {
	return fmt.Sprintf("%s: slot %d cannot %s: %s", domain.ErrMsgPreconditionFailed, e.SlotID, e.Event, e.Reason)
}

// Is allows errors.Is() to match both PreconditionError values and the
// domain.ErrPreconditionFailed sentinel
func (e PreconditionError) Is(target error) bool {
	if _, ok := target.(PreconditionError); ok {
		return true
	}
	return target == domain.ErrPreconditionFailed
}

// Rejection reasons, reused by events, audit rows and batch reports.
const (
	ReasonDraftInReview    = "a draft is already in review"
	ReasonNoDraft          = "no draft in progress"
	ReasonDraftNotReady    = "draft is not ready to publish"
	ReasonSlotOccupied     = "slot already hosts a live listing"
	ReasonSlotNotEmpty     = "slot is not empty"
	ReasonNotInMaintenance = "slot is not under maintenance"
	ReasonNotLive          = "slot has no live listing"
	ReasonNotExpired       = "listing has not reached its end time"
)

// Machine decides, for a current slot and a requested event, whether the
// transition is legal and what the slot looks like afterwards. It is pure:
// it never touches storage and never mutates its input.
type Machine struct {
	listingDuration time.Duration
}

// NewMachine creates a Machine. listingDuration is the display window a
// listing receives when its draft is approved.
func NewMachine(listingDuration time.Duration) *Machine {
	return &Machine{listingDuration: listingDuration}
}

// ApplyEvent computes the slot that results from applying ev at instant now.
// Illegal events return a PreconditionError and the zero Slot; the caller's
// snapshot is never partially mutated. The version token (UpdatedAt) is
// carried through unchanged: advancing it is the storage layer's job.
func (m *Machine) ApplyEvent(current domain.Slot, ev Event, now time.Time) (domain.Slot, error) {
	next := current.Clone()

	switch ev.Type {
	case EventSubmitDraft:
		if ev.Draft == nil {
			return domain.Slot{}, fmt.Errorf("%w: %s requires a draft listing", domain.ErrInvalidInput, EventSubmitDraft)
		}
		// A rejected draft is replaced by the next submission; an active one
		// blocks it.
		if current.DraftStatus != domain.DraftStatusNone && current.DraftStatus != domain.DraftStatusRejected {
			return domain.Slot{}, reject(current, ev, ReasonDraftInReview)
		}
		draft := ev.Draft.Clone()
		draft.SubmittedAt = now
		next.Draft = draft
		next.DraftStatus = domain.DraftStatusDrafting

	case EventMarkReadyToPublish:
		if current.DraftStatus != domain.DraftStatusDrafting {
			return domain.Slot{}, reject(current, ev, ReasonNoDraft)
		}
		next.DraftStatus = domain.DraftStatusReadyToPublish

	case EventApproveDraft:
		if current.DraftStatus != domain.DraftStatusReadyToPublish {
			return domain.Slot{}, reject(current, ev, ReasonDraftNotReady)
		}
		// A live listing is never replaced in place; it must be removed or
		// expire before the next approval.
		if current.SlotStatus == domain.SlotStatusLive {
			return domain.Slot{}, reject(current, ev, ReasonSlotOccupied)
		}
		if current.Draft == nil {
			return domain.Slot{}, fmt.Errorf("%w: draft status %s with no draft record", domain.ErrInvalidSlotState, current.DraftStatus)
		}
		next.Live = &domain.LiveListing{
			DraftListing: *current.Draft.Clone(),
			StartTime:    now,
			EndTime:      now.Add(m.listingDuration),
		}
		next.SlotStatus = domain.SlotStatusLive
		next.Draft = nil
		next.DraftStatus = domain.DraftStatusNone

	case EventRejectDraft:
		if current.DraftStatus != domain.DraftStatusReadyToPublish {
			return domain.Slot{}, reject(current, ev, ReasonDraftNotReady)
		}
		// Draft is retained for audit until the next submission replaces it.
		next.DraftStatus = domain.DraftStatusRejected

	case EventSetMaintenance:
		if current.SlotStatus != domain.SlotStatusEmpty {
			return domain.Slot{}, reject(current, ev, ReasonSlotNotEmpty)
		}
		next.SlotStatus = domain.SlotStatusMaintenance

	case EventClearMaintenance:
		if current.SlotStatus != domain.SlotStatusMaintenance {
			return domain.Slot{}, reject(current, ev, ReasonNotInMaintenance)
		}
		next.SlotStatus = domain.SlotStatusEmpty

	case EventRemoveProduct:
		if current.SlotStatus != domain.SlotStatusLive {
			return domain.Slot{}, reject(current, ev, ReasonNotLive)
		}
		next.SlotStatus = domain.SlotStatusEmpty
		next.Live = nil

	case EventExpireListing:
		if current.SlotStatus != domain.SlotStatusLive || current.Live == nil {
			return domain.Slot{}, reject(current, ev, ReasonNotLive)
		}
		if !now.After(current.Live.EndTime) {
			return domain.Slot{}, reject(current, ev, ReasonNotExpired)
		}
		next.SlotStatus = domain.SlotStatusEmpty
		next.Live = nil

	default:
		return domain.Slot{}, fmt.Errorf("%w: unknown event %q", domain.ErrInvalidInput, ev.Type)
	}

	if err := next.Validate(); err != nil {
		return domain.Slot{}, err
	}
	return next, nil
}

func reject(s domain.Slot, ev Event, reason string) error {
	return PreconditionError{SlotID: s.ID, Event: ev.Type, Reason: reason}
}

// BusEventType maps a machine event to the bus event type published when the
// transition commits.
func BusEventType(t EventType) string {
	switch t {
	case EventSubmitDraft:
		return domain.EventTypeDraftSubmitted
	case EventMarkReadyToPublish:
		return domain.EventTypeDraftReady
	case EventApproveDraft:
		return domain.EventTypeListingPublished
	case EventRejectDraft:
		return domain.EventTypeDraftRejected
	case EventSetMaintenance:
		return domain.EventTypeMaintenanceSet
	case EventClearMaintenance:
		return domain.EventTypeMaintenanceCleared
	case EventRemoveProduct:
		return domain.EventTypeListingRemoved
	case EventExpireListing:
		return domain.EventTypeListingExpired
	}
	return ""
}
