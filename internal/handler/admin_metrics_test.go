package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/metrics"
	"github.com/ndifor/vitrine/internal/slot"
)

func uint64Ptr(v uint64) *uint64    { return &v }
func float64Ptr(v float64) *float64 { return &v }
func strPtr(v string) *string       { return &v }

func TestEstimateQuantile(t *testing.T) {
	hist := &dto.Histogram{
		SampleCount: uint64Ptr(100),
		SampleSum:   float64Ptr(12.5),
		Bucket: []*dto.Bucket{
			{CumulativeCount: uint64Ptr(50), UpperBound: float64Ptr(0.05)},
			{CumulativeCount: uint64Ptr(90), UpperBound: float64Ptr(0.1)},
			{CumulativeCount: uint64Ptr(100), UpperBound: float64Ptr(0.5)},
		},
	}

	assert.Equal(t, 0.05, estimateQuantile(hist, 0.5))
	assert.Equal(t, 0.1, estimateQuantile(hist, 0.9))
	assert.Equal(t, 0.5, estimateQuantile(hist, 0.95))
}

func TestEstimateQuantile_EmptyHistogram(t *testing.T) {
	hist := &dto.Histogram{SampleCount: uint64Ptr(0)}
	assert.Equal(t, 0.0, estimateQuantile(hist, 0.95))
}

func TestGetLabelValue(t *testing.T) {
	m := &dto.Metric{
		Label: []*dto.LabelPair{
			{Name: strPtr("status"), Value: strPtr("200")},
			{Name: strPtr("method"), Value: strPtr("GET")},
		},
	}

	assert.Equal(t, "200", getLabelValue(m, "status"))
	assert.Equal(t, "GET", getLabelValue(m, "method"))
	assert.Equal(t, "", getLabelValue(m, "path"))
}

func TestHandleGetMetrics_GathersRegisteredCounters(t *testing.T) {
	// Counters are process-global, so only lower bounds can be asserted.
	metrics.SlotTransitions.WithLabelValues(domain.EventTypeListingPublished, domain.SourceAdmin).Inc()
	metrics.TransitionRejections.WithLabelValues(string(slot.EventSubmitDraft), slot.ReasonDraftInReview).Inc()
	metrics.ReconcileRuns.Inc()
	metrics.CacheHits.WithLabelValues("storefront").Inc()

	handler := NewAdminMetricsHandler()

	req := httptest.NewRequest("GET", "/api/v1/admin/metrics", nil)
	w := httptest.NewRecorder()

	handler.HandleGetMetrics(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp AdminMetricsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.GreaterOrEqual(t, resp.Slots.TransitionsByEvent[domain.EventTypeListingPublished], 1.0)
	assert.GreaterOrEqual(t, resp.Slots.RejectionsByReason[slot.ReasonDraftInReview], 1.0)
	assert.GreaterOrEqual(t, resp.Reconciler.Runs, 1.0)
	assert.GreaterOrEqual(t, resp.Caches.HitsByCache["storefront"], 1.0)
}
