package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/logger"
	"github.com/ndifor/vitrine/internal/reconciler"
)

// ErrMsgReconcileUnauthorized is the exact body the trigger contract
// promises external schedulers on a key mismatch.
const ErrMsgReconcileUnauthorized = "Unauthorized"

// ReconcileResponse reports a completed sweep to the external scheduler.
type ReconcileResponse struct {
	Success   bool                      `json:"success"`
	Processed int                       `json:"processed"`
	Updated   int                       `json:"updated"`
	Failures  []domain.ReconcileFailure `json:"failures,omitempty"`
}

// ReconcileErrorResponse reports a sweep that could not run.
type ReconcileErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ReconcileHandler exposes the externally triggered expiry sweep. The route
// sits outside the X-API-Key middleware and carries its own shared-secret
// check so cron-style callers can authenticate with a query parameter.
type ReconcileHandler struct {
	service reconciler.Service
	apiKey  string
}

// NewReconcileHandler creates the trigger endpoint. An empty apiKey disables
// the shared-secret check.
func NewReconcileHandler(service reconciler.Service, apiKey string) *ReconcileHandler {
	return &ReconcileHandler{service: service, apiKey: apiKey}
}

// HandleReconcile runs one expiry sweep over the live slots
// @Summary Trigger a reconciliation sweep
// @Description Expires every live listing past its end time. Triggered by an external scheduler; safe to re-run and to overlap with admin operations.
// @Tags tasks
// @Produce json
// @Param apiKey query string false "Shared secret, required when the server has one configured"
// @Success 200 {object} ReconcileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ReconcileErrorResponse
// @Router /tasks/reconcile [post]
func (h *ReconcileHandler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if h.apiKey != "" {
		provided := r.URL.Query().Get("apiKey")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.apiKey)) != 1 {
			log.Warn("Reconcile trigger rejected: bad api key", "remote_addr", r.RemoteAddr)
			respondError(w, http.StatusUnauthorized, ErrMsgReconcileUnauthorized)
			return
		}
	}

	report, err := h.service.Run(r.Context())
	if err != nil {
		log.Error("Reconcile sweep failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, ReconcileErrorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, ReconcileResponse{
		Success:   true,
		Processed: report.Processed,
		Updated:   report.Updated,
		Failures:  report.Failures,
	})
}
