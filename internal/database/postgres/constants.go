package postgres

// Error Messages - Slot Operations
const (
	ErrMsgFailedToGetSlot         = "failed to get slot"
	ErrMsgFailedToListSlots       = "failed to list slots"
	ErrMsgFailedToUpdateSlot      = "failed to update slot"
	ErrMsgFailedToCheckSlotExists = "failed to check slot exists"
	ErrMsgFailedToScanSlot        = "failed to scan slot"
	ErrMsgFailedToEncodeImageURLs = "failed to encode image urls"
	ErrMsgFailedToDecodeImageURLs = "failed to decode image urls"
	ErrMsgFailedToEnsureSlotPool  = "failed to ensure slot pool"
	ErrMsgFailedToCountSlots      = "failed to count slots"
)

// Error Messages - Transition Audit Operations
const (
	ErrMsgFailedToRecordTransition   = "failed to record transition"
	ErrMsgFailedToGetTransitions     = "failed to get transitions"
	ErrMsgFailedToScanTransition     = "failed to scan transition"
	ErrMsgFailedToCleanupTransitions = "failed to cleanup transitions"
	ErrMsgFailedToEncodePayload      = "failed to encode payload"
	ErrMsgFailedToDecodePayload      = "failed to decode payload"
)
