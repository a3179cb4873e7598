package worker

// CleanupHour is the local hour (WAT) at which the audit retention job runs,
// chosen for the overnight traffic trough.
const CleanupHour = 3

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Audit Cleanup Worker
// ============================================================================

// Log messages for audit cleanup worker operations
const (
	LogMsgCleanupStandby      = "Audit cleanup in standby"
	LogMsgCleanupApproach     = "Audit cleanup scheduled"
	LogMsgCleanupEnqueued     = "Audit cleanup job enqueued"
	LogMsgCleanupCancelled    = "Cancelled pending audit cleanup"
	LogMsgCleanupShutdownDone = "Audit cleanup worker shutdown complete"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount = 2
	TestQueueSize   = 10
)
