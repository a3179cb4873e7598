package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking. These represent domain events that can be published
// and consumed by multiple modules.
//
// Event types follow the pattern: <entity>.<action> (e.g., "slot.draft.submitted")
const (
	// EventTypeDraftSubmitted is published when a seller submits a draft into an available slot
	EventTypeDraftSubmitted = "slot.draft.submitted"

	// EventTypeDraftReady is published when a seller marks their draft ready for review
	EventTypeDraftReady = "slot.draft.ready"

	// EventTypeDraftRejected is published when an operator rejects a reviewed draft
	EventTypeDraftRejected = "slot.draft.rejected"

	// EventTypeListingPublished is published when an approved draft goes live in its slot
	EventTypeListingPublished = "slot.listing.published"

	// EventTypeListingRemoved is published when an operator takes a live listing down
	EventTypeListingRemoved = "slot.listing.removed"

	// EventTypeListingExpired is published when the reconciler clears a listing past its end time
	EventTypeListingExpired = "slot.listing.expired"

	// EventTypeMaintenanceSet is published when an operator places an empty slot under maintenance
	EventTypeMaintenanceSet = "slot.maintenance.set"

	// EventTypeMaintenanceCleared is published when an operator returns a slot to service
	EventTypeMaintenanceCleared = "slot.maintenance.cleared"

	// EventTypeTransitionRejected is published when a requested transition is refused,
	// either by a precondition check or by losing the version-token race
	EventTypeTransitionRejected = "slot.transition.rejected"

	// EventTypeReconcileCompleted is published when a reconciliation sweep finishes
	EventTypeReconcileCompleted = "reconcile.completed"

	// EventTypeAuditCleanupComplete is published when the audit retention job finishes a pass
	EventTypeAuditCleanupComplete = "audit_cleanup.complete"
)

// TransitionMetadata attributes a slot event to the surface that caused it
// (seller, admin or reconciler).
type TransitionMetadata struct {
	Source string `json:"source"`
}
