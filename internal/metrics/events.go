package metrics

import (
	"context"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/event"
	"github.com/ndifor/vitrine/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// committedTransitionTypes are the event types recorded as slot transitions
var committedTransitionTypes = []event.Type{
	domain.EventTypeDraftSubmitted,
	domain.EventTypeDraftReady,
	domain.EventTypeDraftRejected,
	domain.EventTypeListingPublished,
	domain.EventTypeListingRemoved,
	domain.EventTypeListingExpired,
	domain.EventTypeMaintenanceSet,
	domain.EventTypeMaintenanceCleared,
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := append([]event.Type{}, committedTransitionTypes...)
	eventTypes = append(eventTypes,
		domain.EventTypeTransitionRejected,
		domain.EventTypeReconcileCompleted,
		domain.EventTypeAuditCleanupComplete,
	)

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		log.Debug(LogMsgEventPayloadNotDecodable, "type", evt.Type, "error", err)
		return nil
	}

	switch evt.Type {
	case domain.EventTypeTransitionRejected:
		eventName, _ := payload[PayloadFieldEvent].(string)
		reason, _ := payload[PayloadFieldReason].(string)
		TransitionRejections.WithLabelValues(eventName, reason).Inc()

	case domain.EventTypeReconcileCompleted:
		ReconcileRuns.Inc()
		ReconcileSlotsExpired.Add(numberField(payload, PayloadFieldUpdated))
		ReconcileFailures.Add(numberField(payload, PayloadFieldFailed))

	case domain.EventTypeAuditCleanupComplete:
		AuditRecordsRemoved.Add(numberField(payload, PayloadFieldRecordsRemoved))

	default:
		// Committed transitions, labelled by origin
		source, _ := payload[PayloadFieldSource].(string)
		SlotTransitions.WithLabelValues(string(evt.Type), source).Inc()

		switch evt.Type {
		case domain.EventTypeListingPublished:
			ListingsPublished.Inc()
		case domain.EventTypeListingExpired:
			ListingsExpired.Inc()
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// numberField reads a numeric payload field regardless of whether the payload
// arrived as a typed struct or went through a JSON round-trip
func numberField(payload map[string]interface{}, key string) float64 {
	switch v := payload[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
