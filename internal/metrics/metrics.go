package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	SlotTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSlotTransitions,
			Help: HelpTextSlotTransitions,
		},
		[]string{LabelType, LabelSource},
	)

	TransitionRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTransitionRejections,
			Help: HelpTextTransitionRejections,
		},
		[]string{LabelEvent, LabelReason},
	)

	ListingsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsPublished,
			Help: HelpTextListingsPublished,
		},
	)

	ListingsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsExpired,
			Help: HelpTextListingsExpired,
		},
	)

	ReconcileRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReconcileRuns,
			Help: HelpTextReconcileRuns,
		},
	)

	ReconcileSlotsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReconcileExpired,
			Help: HelpTextReconcileExpired,
		},
	)

	ReconcileFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReconcileFailures,
			Help: HelpTextReconcileFailures,
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheHits,
			Help: HelpTextCacheHits,
		},
		[]string{LabelCache},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheMisses,
			Help: HelpTextCacheMisses,
		},
		[]string{LabelCache},
	)

	AuditRecordsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAuditRecordsRemoved,
			Help: HelpTextAuditRecordsRemoved,
		},
	)
)
