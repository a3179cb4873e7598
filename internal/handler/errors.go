package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Path parameter error messages
	ErrMsgInvalidSlotID = "Invalid slot id"

	// Seller operation error messages
	ErrMsgSubmitDraftFailed = "Failed to submit draft"
	ErrMsgMarkReadyFailed   = "Failed to mark draft ready"

	// Admin operation error messages
	ErrMsgApproveDraftFailed     = "Failed to approve draft"
	ErrMsgRejectDraftFailed      = "Failed to reject draft"
	ErrMsgSetMaintenanceFailed   = "Failed to set maintenance"
	ErrMsgClearMaintenanceFailed = "Failed to clear maintenance"
	ErrMsgRemoveProductFailed    = "Failed to remove product"
	ErrMsgBatchFailed            = "Failed to run batch operation"
	ErrMsgUnknownBatchOperation  = "Unknown batch operation '%s'. Valid options: approve, reject, set-maintenance, clear-maintenance, remove"
	ErrMsgGetSlotFailed          = "Failed to retrieve slot"
	ErrMsgListSlotsFailed        = "Failed to retrieve slots"
	ErrMsgGetAuditTrailFailed    = "Failed to retrieve slot history"

	// Storefront error messages
	ErrMsgListListingsFailed = "Failed to retrieve listings"
	ErrMsgGetSlotViewFailed  = "Failed to retrieve slot"

	// Parameter validation error messages
	ErrMsgInvalidLimit = "Invalid limit parameter"
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	// Seller success messages
	MsgDraftSubmittedSuccess = "Draft submitted for review"
	MsgDraftReadySuccess     = "Draft marked ready to publish"

	// Admin success messages
	MsgDraftApprovedSuccess     = "Draft approved and published"
	MsgDraftRejectedSuccess     = "Draft rejected"
	MsgMaintenanceSetSuccess    = "Slot placed in maintenance"
	MsgMaintenanceClearedSucces = "Slot returned to service"
	MsgProductRemovedSuccess    = "Product removed from slot"
)
