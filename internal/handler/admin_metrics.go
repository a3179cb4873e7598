package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/ndifor/vitrine/internal/metrics"
)

// AdminMetricsResponse contains JSON-formatted metrics for the admin dashboard
type AdminMetricsResponse struct {
	HTTP       HTTPMetrics       `json:"http"`
	Events     EventMetrics      `json:"events"`
	Slots      SlotMetrics       `json:"slots"`
	Reconciler ReconcilerMetrics `json:"reconciler"`
	Caches     CacheMetrics      `json:"caches"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type SlotMetrics struct {
	TransitionsByEvent map[string]float64 `json:"transitions_by_event"`
	RejectionsByReason map[string]float64 `json:"rejections_by_reason"`
	ListingsPublished  float64            `json:"listings_published"`
	ListingsExpired    float64            `json:"listings_expired"`
}

type ReconcilerMetrics struct {
	Runs         float64 `json:"runs"`
	SlotsExpired float64 `json:"slots_expired"`
	Failures     float64 `json:"failures"`
}

type CacheMetrics struct {
	HitsByCache   map[string]float64 `json:"hits_by_cache"`
	MissesByCache map[string]float64 `json:"misses_by_cache"`
}

// AdminMetricsHandler handles admin metrics requests
type AdminMetricsHandler struct{}

// NewAdminMetricsHandler creates a new admin metrics handler
func NewAdminMetricsHandler() *AdminMetricsHandler {
	return &AdminMetricsHandler{}
}

// HandleGetMetrics returns JSON-formatted metrics from Prometheus
// GET /api/v1/admin/metrics
// @Summary Get dashboard metrics
// @Description Returns the slot, reconciler, cache and HTTP counters as JSON for admin tooling. The raw Prometheus exposition stays on /metrics.
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/metrics [get]
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	gathered, err := gatherMetrics()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to gather metrics")
		return
	}

	respondJSON(w, http.StatusOK, gathered)
}

func gatherMetrics() (*AdminMetricsResponse, error) {
	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{
			RequestsTotalByStatus: make(map[string]float64),
		},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
		Slots: SlotMetrics{
			TransitionsByEvent: make(map[string]float64),
			RejectionsByReason: make(map[string]float64),
		},
		Caches: CacheMetrics{
			HitsByCache:   make(map[string]float64),
			MissesByCache: make(map[string]float64),
		},
	}

	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			for _, m := range mf.GetMetric() {
				status := getLabelValue(m, metrics.LabelStatus)
				if status != "" {
					resp.HTTP.RequestsTotalByStatus[status] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameHTTPRequestDuration:
			// Calculate avg and p95 from histogram
			for _, m := range mf.GetMetric() {
				hist := m.GetHistogram()
				if hist != nil {
					if hist.GetSampleCount() > 0 {
						resp.HTTP.AvgLatencyMs = (hist.GetSampleSum() / float64(hist.GetSampleCount())) * 1000
					}
					resp.HTTP.P95LatencyMs = estimateQuantile(hist, 0.95) * 1000
				}
			}
		case metrics.MetricNameHTTPRequestsInFlight:
			for _, m := range mf.GetMetric() {
				resp.HTTP.InFlight += m.GetGauge().GetValue()
			}
		case metrics.MetricNameEventsPublished:
			for _, m := range mf.GetMetric() {
				eventType := getLabelValue(m, metrics.LabelType)
				if eventType != "" {
					resp.Events.PublishedTotalByType[eventType] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameEventHandlerErrors:
			for _, m := range mf.GetMetric() {
				eventType := getLabelValue(m, metrics.LabelType)
				if eventType != "" {
					resp.Events.HandlerErrorsByType[eventType] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameSlotTransitions:
			for _, m := range mf.GetMetric() {
				event := getLabelValue(m, metrics.LabelType)
				if event != "" {
					resp.Slots.TransitionsByEvent[event] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameTransitionRejections:
			for _, m := range mf.GetMetric() {
				reason := getLabelValue(m, metrics.LabelReason)
				if reason != "" {
					resp.Slots.RejectionsByReason[reason] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameListingsPublished:
			for _, m := range mf.GetMetric() {
				resp.Slots.ListingsPublished += m.GetCounter().GetValue()
			}
		case metrics.MetricNameListingsExpired:
			for _, m := range mf.GetMetric() {
				resp.Slots.ListingsExpired += m.GetCounter().GetValue()
			}
		case metrics.MetricNameReconcileRuns:
			for _, m := range mf.GetMetric() {
				resp.Reconciler.Runs += m.GetCounter().GetValue()
			}
		case metrics.MetricNameReconcileExpired:
			for _, m := range mf.GetMetric() {
				resp.Reconciler.SlotsExpired += m.GetCounter().GetValue()
			}
		case metrics.MetricNameReconcileFailures:
			for _, m := range mf.GetMetric() {
				resp.Reconciler.Failures += m.GetCounter().GetValue()
			}
		case metrics.MetricNameCacheHits:
			for _, m := range mf.GetMetric() {
				cache := getLabelValue(m, metrics.LabelCache)
				if cache != "" {
					resp.Caches.HitsByCache[cache] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameCacheMisses:
			for _, m := range mf.GetMetric() {
				cache := getLabelValue(m, metrics.LabelCache)
				if cache != "" {
					resp.Caches.MissesByCache[cache] += m.GetCounter().GetValue()
				}
			}
		}
	}

	return resp, nil
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// estimateQuantile approximates the given quantile from a histogram
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	targetCount := float64(totalCount) * quantile
	var cumulativeCount uint64

	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		cumulativeCount = bucket.GetCumulativeCount()
		if float64(cumulativeCount) >= targetCount {
			return bucket.GetUpperBound()
		}
	}

	// If we reach here, return the last bucket's upper bound
	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
