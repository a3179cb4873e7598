package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ndifor/vitrine/internal/audit"
)

// TransitionsResponse contains transition history query results
type TransitionsResponse struct {
	Transitions []audit.TransitionRecord `json:"transitions"`
	Count       int                      `json:"count"`
}

// HandleQueryTransitions retrieves transition history based on query parameters
// GET /api/v1/admin/transitions?slot_id=X&event_type=Y&source=Z&since=T&until=T&limit=N
// @Summary Query transition history
// @Description Returns transition records across the whole pool, filtered by slot, event type, source and time window
// @Tags admin
// @Produce json
// @Param slot_id query int false "Restrict to one slot"
// @Param event_type query string false "Restrict to one event type"
// @Param source query string false "Restrict to one actor (seller, admin, reconciler)"
// @Param since query string false "Earliest record time (RFC3339)"
// @Param until query string false "Latest record time (RFC3339)"
// @Param limit query int false "Maximum records to return"
// @Success 200 {object} TransitionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/transitions [get]
func (h *AdminHandler) HandleQueryTransitions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := audit.TransitionFilter{
		Limit: audit.DefaultQueryLimit,
	}

	if slotIDStr := query.Get("slot_id"); slotIDStr != "" {
		slotID, err := strconv.Atoi(slotIDStr)
		if err != nil || slotID < 1 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidSlotID)
			return
		}
		filter.SlotID = &slotID
	}

	if eventType := query.Get("event_type"); eventType != "" {
		filter.EventType = &eventType
	}

	if source := query.Get("source"); source != "" {
		filter.Source = &source
	}

	if sinceStr := query.Get("since"); sinceStr != "" {
		since, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'since' timestamp format (use RFC3339)")
			return
		}
		filter.Since = &since
	}

	if untilStr := query.Get("until"); untilStr != "" {
		until, err := time.Parse(time.RFC3339, untilStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'until' timestamp format (use RFC3339)")
			return
		}
		filter.Until = &until
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > audit.MaxQueryLimit {
			respondError(w, http.StatusBadRequest, "Invalid 'limit' (must be 1-"+strconv.Itoa(audit.MaxQueryLimit)+")")
			return
		}
		filter.Limit = limit
	}

	transitions, err := h.audit.QueryTransitions(r.Context(), filter)
	if err != nil {
		respondServiceError(w, r, "Query transitions", err)
		return
	}

	respondJSON(w, http.StatusOK, TransitionsResponse{
		Transitions: transitions,
		Count:       len(transitions),
	})
}
