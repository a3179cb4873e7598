package audit

import (
	"context"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/event"
	"github.com/ndifor/vitrine/internal/logger"
)

// Service records the transition history of the slot pool
type Service interface {
	// Subscribe registers the audit writer for every slot event type
	Subscribe(bus event.Bus) error

	// TransitionsForSlot returns the recent history of one slot, newest first
	TransitionsForSlot(ctx context.Context, slotID int, limit int) ([]TransitionRecord, error)

	// QueryTransitions returns history matching the filter, newest first
	QueryTransitions(ctx context.Context, filter TransitionFilter) ([]TransitionRecord, error)

	// CleanupOldTransitions removes records older than the retention period
	CleanupOldTransitions(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new audit service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers the audit handler for committed transitions and
// rejections alike. Sweep summaries and cleanup completions are operational
// signals, not slot history, and are left out.
func (s *service) Subscribe(bus event.Bus) error {
	eventTypes := []event.Type{
		domain.EventTypeDraftSubmitted,
		domain.EventTypeDraftReady,
		domain.EventTypeDraftRejected,
		domain.EventTypeListingPublished,
		domain.EventTypeListingRemoved,
		domain.EventTypeListingExpired,
		domain.EventTypeMaintenanceSet,
		domain.EventTypeMaintenanceCleared,
		domain.EventTypeTransitionRejected,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent flattens a slot event into a transition record and stores it
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	fields, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		log.Debug(LogMsgPayloadNotDecodable, "type", evt.Type, "error", err)
		return nil
	}

	rec := TransitionRecord{
		SlotID:     intField(fields, PayloadKeySlotID),
		EventType:  string(evt.Type),
		FromStatus: strField(fields, PayloadKeyFromStatus),
		ToStatus:   strField(fields, PayloadKeyToStatus),
		Source:     strField(fields, PayloadKeySource),
		Reason:     strField(fields, PayloadKeyReason),
		Payload:    fields,
	}

	// Rejection payloads carry the unchanged status under slot_status.
	if rec.FromStatus == "" {
		rec.FromStatus = strField(fields, PayloadKeySlotStatus)
	}
	if rec.Source == "" {
		if src, ok := evt.GetMetadataValue(domain.MetadataKeySource).(string); ok {
			rec.Source = src
		}
	}

	if err := s.repo.RecordTransition(ctx, rec); err != nil {
		log.Error(LogMsgRecordFailed, "error", err, "type", evt.Type, "slot_id", rec.SlotID)
		return err
	}

	log.Debug(LogMsgTransitionRecorded, "type", evt.Type, "slot_id", rec.SlotID)
	return nil
}

// TransitionsForSlot returns the recent history of one slot
func (s *service) TransitionsForSlot(ctx context.Context, slotID int, limit int) ([]TransitionRecord, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}
	return s.repo.GetTransitionsBySlot(ctx, slotID, limit)
}

// QueryTransitions returns history matching the filter
func (s *service) QueryTransitions(ctx context.Context, filter TransitionFilter) ([]TransitionRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	if filter.Limit > MaxQueryLimit {
		filter.Limit = MaxQueryLimit
	}
	return s.repo.GetTransitions(ctx, filter)
}

// CleanupOldTransitions removes records older than the retention period
func (s *service) CleanupOldTransitions(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldTransitions(ctx, retentionDays)
}

func intField(fields map[string]interface{}, key string) int {
	switch v := fields[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func strField(fields map[string]interface{}, key string) string {
	s, _ := fields[key].(string)
	return s
}
