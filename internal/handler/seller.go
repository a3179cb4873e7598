package handler

import (
	"net/http"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/logger"
	"github.com/ndifor/vitrine/internal/slot"
)

// SellerHandler serves the seller-side draft workflow: submitting a listing
// draft into a slot and marking it ready for review.
type SellerHandler struct {
	guard slot.Service
}

func NewSellerHandler(guard slot.Service) *SellerHandler {
	return &SellerHandler{guard: guard}
}

// SubmitDraftRequest carries the seller's listing draft. Price is the major
// unit amount as a decimal string ("175000", "12.50"); it is converted to
// minor units using the currency's own scale.
type SubmitDraftRequest struct {
	NameEn        string   `json:"name_en" validate:"required,max=200"`
	NameFr        string   `json:"name_fr" validate:"required,max=200"`
	Price         string   `json:"price" validate:"required,max=32"`
	Currency      string   `json:"currency" validate:"required,currency"`
	SellerContact string   `json:"seller_contact" validate:"required,e164"`
	ImageURLs     []string `json:"image_urls" validate:"omitempty,max=10,dive,url"`
}

// SlotResponse wraps the updated slot returned by every transition endpoint.
type SlotResponse struct {
	Message string       `json:"message"`
	Slot    *domain.Slot `json:"slot"`
}

// HandleSubmitDraft submits a new draft listing into a slot
// @Summary Submit a draft listing
// @Description Places a new draft into the slot's review pipeline. Allowed while the slot has no active draft; a rejected draft is replaced.
// @Tags seller
// @Accept json
// @Produce json
// @Param slotID path int true "Slot ID"
// @Param request body SubmitDraftRequest true "Draft listing"
// @Success 201 {object} SlotResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /slots/{slotID}/draft [post]
func (h *SellerHandler) HandleSubmitDraft(w http.ResponseWriter, r *http.Request) {
	slotID, ok := GetSlotIDParam(r, w)
	if !ok {
		return
	}

	var req SubmitDraftRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit draft"); err != nil {
		return
	}

	priceMinor, err := domain.ParsePriceMinor(req.Price, req.Currency)
	if err != nil {
		respondServiceError(w, r, "Submit draft", err)
		return
	}

	log := logger.FromContext(r.Context())
	LogRequestFields(log, "slot_id", slotID, "currency", req.Currency, "price_minor", priceMinor)

	draft := &domain.DraftListing{
		NameEn:        req.NameEn,
		NameFr:        req.NameFr,
		PriceMinor:    priceMinor,
		Currency:      req.Currency,
		SellerContact: req.SellerContact,
		ImageURLs:     req.ImageURLs,
	}

	updated, err := h.guard.Apply(r.Context(), slotID, slot.Event{
		Type:   slot.EventSubmitDraft,
		Draft:  draft,
		Source: domain.SourceSeller,
	})
	if err != nil {
		respondServiceError(w, r, "Submit draft", err)
		return
	}

	respondJSON(w, http.StatusCreated, SlotResponse{Message: MsgDraftSubmittedSuccess, Slot: updated})
}

// HandleMarkReady marks the slot's draft ready for admin review
// @Summary Mark a draft ready to publish
// @Description Moves the slot's draft from drafting to ready_to_publish so an admin can review it.
// @Tags seller
// @Produce json
// @Param slotID path int true "Slot ID"
// @Success 200 {object} SlotResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /slots/{slotID}/draft/ready [post]
func (h *SellerHandler) HandleMarkReady(w http.ResponseWriter, r *http.Request) {
	slotID, ok := GetSlotIDParam(r, w)
	if !ok {
		return
	}

	updated, err := h.guard.Apply(r.Context(), slotID, slot.Event{
		Type:   slot.EventMarkReadyToPublish,
		Source: domain.SourceSeller,
	})
	if err != nil {
		respondServiceError(w, r, "Mark draft ready", err)
		return
	}

	respondJSON(w, http.StatusOK, SlotResponse{Message: MsgDraftReadySuccess, Slot: updated})
}
