package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndifor/vitrine/internal/admin"
	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/logger"
)

// BatchRequest carries the ordered slot ids a batch operation applies to.
// Order is preserved in the report's outcome list.
type BatchRequest struct {
	SlotIDs []int `json:"slot_ids" validate:"required,min=1,max=100,dive,min=1"`
}

// BatchResponse pairs the requested operation with its full per-slot report.
type BatchResponse struct {
	Operation string              `json:"operation"`
	Report    *domain.BatchReport `json:"report"`
}

// HandleBatch applies one admin operation to an ordered list of slots
// @Summary Run a batch operation
// @Description Applies one operation (approve, reject, set-maintenance, clear-maintenance, remove) to each slot id in order. Slots are processed independently; the report carries a tagged outcome per slot. Mixed success and failure returns 207 with the same report.
// @Tags admin
// @Accept json
// @Produce json
// @Param operation path string true "Operation" Enums(approve, reject, set-maintenance, clear-maintenance, remove)
// @Param request body BatchRequest true "Ordered slot ids"
// @Success 200 {object} BatchResponse
// @Success 207 {object} BatchResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/slots/batch/{operation} [post]
func (h *AdminHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	op := admin.Operation(chi.URLParam(r, "operation"))
	if _, known := op.Event(); !known {
		http.Error(w, fmt.Sprintf(ErrMsgUnknownBatchOperation, op), http.StatusBadRequest)
		return
	}

	var req BatchRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Batch "+string(op)); err != nil {
		return
	}

	log := logger.FromContext(r.Context())
	LogRequestFields(log, "operation", op, "slot_count", len(req.SlotIDs))

	report, err := h.service.Batch(r.Context(), op, req.SlotIDs)
	if err != nil {
		// A partial failure still carries the full report; the status code
		// tells callers to inspect per-slot outcomes.
		if errors.Is(err, domain.ErrBatchPartialFailure) && report != nil {
			respondJSON(w, http.StatusMultiStatus, BatchResponse{Operation: string(op), Report: report})
			return
		}
		respondServiceError(w, r, "Batch "+string(op), err)
		return
	}

	respondJSON(w, http.StatusOK, BatchResponse{Operation: string(op), Report: report})
}
