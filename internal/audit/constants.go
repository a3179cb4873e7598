package audit

// Query limits for transition history reads
const (
	DefaultQueryLimit = 50
	MaxQueryLimit     = 500
)

// JSON payload field keys shared by the slot event payloads
const (
	PayloadKeySlotID     = "slot_id"
	PayloadKeyFromStatus = "from_status"
	PayloadKeyToStatus   = "to_status"
	PayloadKeySlotStatus = "slot_status"
	PayloadKeySource     = "source"
	PayloadKeyReason     = "reason"
)

// Log messages - service events
const (
	LogMsgPayloadNotDecodable = "Event payload could not be decoded, skipping audit record"
	LogMsgRecordFailed        = "Failed to record transition"
	LogMsgTransitionRecorded  = "Transition recorded"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting audit cleanup job"
	LogMsgCleanupJobFailed    = "Audit cleanup failed"
	LogMsgCleanupJobCompleted = "Audit cleanup completed"
)
