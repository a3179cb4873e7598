package audit

import (
	"context"
	"time"
)

// TransitionRecord is one row of the slot transition history: a committed
// transition, or a rejection with its reason. Payload keeps the full event
// payload for fields the flat columns do not carry.
type TransitionRecord struct {
	ID         int64                  `json:"id"`
	SlotID     int                    `json:"slot_id"`
	EventType  string                 `json:"event_type"`
	FromStatus string                 `json:"from_status,omitempty"`
	ToStatus   string                 `json:"to_status,omitempty"`
	Source     string                 `json:"source,omitempty"`
	Reason     string                 `json:"reason,omitempty"`
	Payload    map[string]interface{} `json:"payload"`
	CreatedAt  time.Time              `json:"created_at"`
}

// TransitionFilter filters transition history queries
type TransitionFilter struct {
	SlotID    *int
	EventType *string
	Source    *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Repository defines the interface for transition history storage
type Repository interface {
	// RecordTransition stores one transition record
	RecordTransition(ctx context.Context, rec TransitionRecord) error

	// GetTransitions retrieves transition records matching the filter,
	// newest first
	GetTransitions(ctx context.Context, filter TransitionFilter) ([]TransitionRecord, error)

	// GetTransitionsBySlot retrieves the recent history of a single slot,
	// newest first
	GetTransitionsBySlot(ctx context.Context, slotID int, limit int) ([]TransitionRecord, error)

	// CleanupOldTransitions removes records older than the specified number
	// of days and reports how many were removed
	CleanupOldTransitions(ctx context.Context, retentionDays int) (int64, error)
}
