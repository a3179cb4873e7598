package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ndifor/vitrine/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}

	// Check for map
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}

	// Check for TransitionMetadata struct
	if m, ok := e.Metadata.(domain.TransitionMetadata); ok {
		if key == domain.MetadataKeySource {
			return m.Source
		}
	}

	return nil
}

// AuditCleanupPayloadV1 is the typed payload for audit cleanup complete events
type AuditCleanupPayloadV1 struct {
	CleanupTime    time.Time `json:"cleanup_time"`
	RecordsRemoved int64     `json:"records_removed"`
}

// Type-safe event constructors

// NewSlotTransitionEvent creates an event for a committed slot transition.
// Used for the transitions that carry no listing data of their own:
// draft submission, review moves, maintenance toggles and removals.
func NewSlotTransitionEvent(eventType string, slotID int, fromStatus, toStatus domain.SlotStatus, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(eventType),
		Payload: domain.SlotTransitionPayload{
			SlotID:     slotID,
			Event:      eventType,
			FromStatus: string(fromStatus),
			ToStatus:   string(toStatus),
			Source:     source,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: domain.TransitionMetadata{
			Source: source,
		},
	}
}

// NewListingPublishedEvent creates a new listing published event carrying the
// listing snapshot that just went live
func NewListingPublishedEvent(slotID int, live domain.LiveListing, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeListingPublished),
		Payload: domain.ListingPublishedPayload{
			SlotID:     slotID,
			NameEn:     live.NameEn,
			NameFr:     live.NameFr,
			PriceMinor: live.PriceMinor,
			Currency:   live.Currency,
			StartTime:  live.StartTime.Unix(),
			EndTime:    live.EndTime.Unix(),
			Source:     source,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: domain.TransitionMetadata{
			Source: source,
		},
	}
}

// NewListingExpiredEvent creates a new listing expired event from the listing
// that was cleared
func NewListingExpiredEvent(slotID int, live domain.LiveListing, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeListingExpired),
		Payload: domain.ListingExpiredPayload{
			SlotID:    slotID,
			NameEn:    live.NameEn,
			EndTime:   live.EndTime.Unix(),
			Source:    source,
			Timestamp: time.Now().Unix(),
		},
		Metadata: domain.TransitionMetadata{
			Source: source,
		},
	}
}

// NewTransitionRejectedEvent creates an event recording a refused transition
func NewTransitionRejectedEvent(slotID int, eventName string, slotStatus domain.SlotStatus, reason, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeTransitionRejected),
		Payload: domain.TransitionRejectedPayload{
			SlotID:     slotID,
			Event:      eventName,
			SlotStatus: string(slotStatus),
			Reason:     reason,
			Source:     source,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: domain.TransitionMetadata{
			Source: source,
		},
	}
}

// NewReconcileCompletedEvent creates a new reconcile completed event
func NewReconcileCompletedEvent(report domain.ReconcileReport, duration time.Duration) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeReconcileCompleted),
		Payload: domain.ReconcileCompletedPayload{
			Processed:  report.Processed,
			Updated:    report.Updated,
			Failed:     len(report.Failures),
			DurationMs: duration.Milliseconds(),
			Timestamp:  time.Now().Unix(),
		},
		Metadata: domain.TransitionMetadata{
			Source: domain.SourceReconciler,
		},
	}
}

// NewAuditCleanupCompleteEvent creates a new audit cleanup complete event
func NewAuditCleanupCompleteEvent(cleanupTime time.Time, recordsRemoved int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    Type(domain.EventTypeAuditCleanupComplete),
		Payload: AuditCleanupPayloadV1{
			CleanupTime:    cleanupTime,
			RecordsRemoved: recordsRemoved,
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; a slow subscriber slows the publisher.
	// Dispatching to a worker pool is possible later if that ever bites.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
