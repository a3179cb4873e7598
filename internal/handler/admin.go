package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ndifor/vitrine/internal/admin"
	"github.com/ndifor/vitrine/internal/audit"
	"github.com/ndifor/vitrine/internal/domain"
)

// SlotReader is the read surface the admin handlers need: full slot detail
// including drafts, which the public storefront never exposes.
type SlotReader interface {
	GetSlot(ctx context.Context, id int) (*domain.Slot, error)
	ListSlots(ctx context.Context) ([]domain.Slot, error)
}

// AdminHandler serves the review workflow and slot pool inspection.
type AdminHandler struct {
	service admin.Service
	slots   SlotReader
	audit   audit.Service
}

func NewAdminHandler(service admin.Service, slots SlotReader, auditSvc audit.Service) *AdminHandler {
	return &AdminHandler{
		service: service,
		slots:   slots,
		audit:   auditSvc,
	}
}

// SlotListResponse wraps the full slot pool for admin inspection.
type SlotListResponse struct {
	Slots []domain.Slot `json:"slots"`
	Count int           `json:"count"`
}

// AuditTrailResponse wraps a slot's transition history, newest first.
type AuditTrailResponse struct {
	SlotID      int                      `json:"slot_id"`
	Transitions []audit.TransitionRecord `json:"transitions"`
	Count       int                      `json:"count"`
}

// handleTransition runs one single-slot admin operation and writes the
// updated slot or the mapped rejection.
func (h *AdminHandler) handleTransition(w http.ResponseWriter, r *http.Request, opName, successMsg string,
	call func(context.Context, int) (*domain.Slot, error)) {
	slotID, ok := GetSlotIDParam(r, w)
	if !ok {
		return
	}

	updated, err := call(r.Context(), slotID)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}

	respondJSON(w, http.StatusOK, SlotResponse{Message: successMsg, Slot: updated})
}

// HandleApproveDraft publishes a ready draft
// @Summary Approve a draft
// @Description Publishes the slot's ready draft as a live, time-boxed listing. Refused while the slot already hosts a live listing.
// @Tags admin
// @Produce json
// @Param slotID path int true "Slot ID"
// @Success 200 {object} SlotResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/slots/{slotID}/approve [post]
func (h *AdminHandler) HandleApproveDraft(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "Approve draft", MsgDraftApprovedSuccess, h.service.ApproveDraft)
}

// HandleRejectDraft rejects a ready draft
// @Summary Reject a draft
// @Description Marks the slot's ready draft rejected. The draft is retained until the next submission replaces it.
// @Tags admin
// @Produce json
// @Param slotID path int true "Slot ID"
// @Success 200 {object} SlotResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/slots/{slotID}/reject [post]
func (h *AdminHandler) HandleRejectDraft(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "Reject draft", MsgDraftRejectedSuccess, h.service.RejectDraft)
}

// HandleSetMaintenance takes an empty slot out of rotation
// @Summary Set slot maintenance
// @Description Places an empty slot under maintenance so it cannot accept a listing.
// @Tags admin
// @Produce json
// @Param slotID path int true "Slot ID"
// @Success 200 {object} SlotResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/slots/{slotID}/set-maintenance [post]
func (h *AdminHandler) HandleSetMaintenance(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "Set maintenance", MsgMaintenanceSetSuccess, h.service.SetMaintenance)
}

// HandleClearMaintenance returns a maintenance slot to rotation
// @Summary Clear slot maintenance
// @Description Returns a maintenance slot to the empty state.
// @Tags admin
// @Produce json
// @Param slotID path int true "Slot ID"
// @Success 200 {object} SlotResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/slots/{slotID}/clear-maintenance [post]
func (h *AdminHandler) HandleClearMaintenance(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "Clear maintenance", MsgMaintenanceClearedSucces, h.service.ClearMaintenance)
}

// HandleRemoveProduct takes a live listing down early
// @Summary Remove a live listing
// @Description Clears the slot's live listing before its end time and returns the slot to empty.
// @Tags admin
// @Produce json
// @Param slotID path int true "Slot ID"
// @Success 200 {object} SlotResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/slots/{slotID}/remove [post]
func (h *AdminHandler) HandleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "Remove product", MsgProductRemovedSuccess, h.service.RemoveProduct)
}

// HandleListSlots returns the whole slot pool with full detail
// @Summary List all slots
// @Description Returns every slot in the pool, including draft and maintenance state the storefront hides.
// @Tags admin
// @Produce json
// @Success 200 {object} SlotListResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/slots [get]
func (h *AdminHandler) HandleListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.slots.ListSlots(r.Context())
	if err != nil {
		respondServiceError(w, r, "List slots", err)
		return
	}

	respondJSON(w, http.StatusOK, SlotListResponse{Slots: slots, Count: len(slots)})
}

// HandleGetSlot returns one slot with full detail
// @Summary Get a slot
// @Description Returns one slot including its draft, live listing and version token.
// @Tags admin
// @Produce json
// @Param slotID path int true "Slot ID"
// @Success 200 {object} domain.Slot
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/slots/{slotID} [get]
func (h *AdminHandler) HandleGetSlot(w http.ResponseWriter, r *http.Request) {
	slotID, ok := GetSlotIDParam(r, w)
	if !ok {
		return
	}

	s, err := h.slots.GetSlot(r.Context(), slotID)
	if err != nil {
		respondServiceError(w, r, "Get slot", err)
		return
	}

	respondJSON(w, http.StatusOK, s)
}

// HandleSlotAudit returns a slot's transition history
// @Summary Get slot history
// @Description Returns the slot's recorded transitions and rejections, newest first.
// @Tags admin
// @Produce json
// @Param slotID path int true "Slot ID"
// @Param limit query int false "Maximum records to return" default(50)
// @Success 200 {object} AuditTrailResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/slots/{slotID}/audit [get]
func (h *AdminHandler) HandleSlotAudit(w http.ResponseWriter, r *http.Request) {
	slotID, ok := GetSlotIDParam(r, w)
	if !ok {
		return
	}

	limitStr := GetOptionalQueryParam(r, "limit", strconv.Itoa(audit.DefaultQueryLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
		return
	}

	records, err := h.audit.TransitionsForSlot(r.Context(), slotID, limit)
	if err != nil {
		respondServiceError(w, r, "Get slot audit trail", err)
		return
	}

	respondJSON(w, http.StatusOK, AuditTrailResponse{
		SlotID:      slotID,
		Transitions: records,
		Count:       len(records),
	})
}
