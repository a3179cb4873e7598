package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionLimit is the maximum number of log files to keep
	LogFileRetentionLimit = 10

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting vitrine"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Slot Pool Sync Messages
// =============================================================================

const (
	LogMsgSyncingSlotPool          = "Ensuring slot pool..."
	LogMsgSlotPoolProvisioned      = "Slot pool provisioned"
	LogMsgSlotPoolUnchanged        = "Slot pool already complete, sync skipped"
	LogMsgSlotPoolLargerThanConfig = "Slot pool holds more slots than configured; extra slots stay in rotation"

	ErrMsgInvalidSlotPoolSize = "slot pool size must be at least 1, got"
	ErrMsgFailedSyncSlotPool  = "failed to sync slot pool"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

// Log messages for event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgAuditWriterSubscribed      = "Audit trail writer subscribed"
	LogMsgStorefrontCacheSubscribed  = "Storefront cache invalidation subscribed"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeAudit       = "failed to subscribe audit writer"
	ErrMsgFailedSubscribeStorefront  = "failed to subscribe storefront invalidator"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer          = "Shutting down server..."
	LogMsgShuttingDownEventPublisher  = "Shutting down event publisher..."
	LogMsgServerStopped               = "Server stopped"
	LogMsgServerForcedShutdown        = "Server forced to shutdown"
	LogMsgCleanupWorkerShutdownFailed = "Audit cleanup worker shutdown failed"
	LogMsgResilientPublisherFailed    = "Resilient publisher shutdown failed"
)
