package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameSlotTransitions      = "slot_transitions_total"
	MetricNameTransitionRejections = "slot_transition_rejections_total"
	MetricNameListingsPublished    = "listings_published_total"
	MetricNameListingsExpired      = "listings_expired_total"
	MetricNameReconcileRuns        = "reconcile_runs_total"
	MetricNameReconcileExpired     = "reconcile_slots_expired_total"
	MetricNameReconcileFailures    = "reconcile_failures_total"
	MetricNameCacheHits            = "cache_hits_total"
	MetricNameCacheMisses          = "cache_misses_total"
	MetricNameAuditRecordsRemoved  = "audit_records_removed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextSlotTransitions      = "Total number of committed slot transitions"
	HelpTextTransitionRejections = "Total number of refused slot transitions"
	HelpTextListingsPublished    = "Total number of listings published"
	HelpTextListingsExpired      = "Total number of listings expired"
	HelpTextReconcileRuns        = "Total number of reconciliation sweeps"
	HelpTextReconcileExpired     = "Total number of slots expired across all sweeps"
	HelpTextReconcileFailures    = "Total number of per-slot reconciliation failures"
	HelpTextCacheHits            = "Total number of cache hits"
	HelpTextCacheMisses          = "Total number of cache misses"
	HelpTextAuditRecordsRemoved  = "Total number of audit records removed by retention cleanup"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelEvent  = "event"
	LabelSource = "source"
	LabelReason = "reason"
	LabelCache  = "cache"
)

// ============================================================================
// Event Payload Field Names
// ============================================================================

// Field names used when extracting values from event payloads
const (
	PayloadFieldSource         = "source"
	PayloadFieldReason         = "reason"
	PayloadFieldEvent          = "event"
	PayloadFieldUpdated        = "updated"
	PayloadFieldFailed         = "failed"
	PayloadFieldRecordsRemoved = "records_removed"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadNotDecodable = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)
