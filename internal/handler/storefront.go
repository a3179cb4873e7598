package handler

import (
	"net/http"

	"github.com/ndifor/vitrine/internal/storefront"
)

// StorefrontHandler serves the public, read-only shop surface. Language comes
// from the lang query parameter when present, otherwise the Accept-Language
// header; the storefront matcher falls back to English.
type StorefrontHandler struct {
	service storefront.Service
}

func NewStorefrontHandler(service storefront.Service) *StorefrontHandler {
	return &StorefrontHandler{service: service}
}

// ListingsResponse wraps the live listings for one requested language.
type ListingsResponse struct {
	Listings []storefront.Listing `json:"listings"`
	Count    int                  `json:"count"`
}

func requestedLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return r.Header.Get("Accept-Language")
}

// HandleListListings returns every live listing
// @Summary List live listings
// @Description Returns the publicly visible listings with names localized to the requested language (lang query param or Accept-Language).
// @Tags storefront
// @Produce json
// @Param lang query string false "Preferred language tag, e.g. fr or en"
// @Success 200 {object} ListingsResponse
// @Failure 500 {object} ErrorResponse
// @Router /storefront/listings [get]
func (h *StorefrontHandler) HandleListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.ListListings(r.Context(), requestedLanguage(r))
	if err != nil {
		respondServiceError(w, r, "List listings", err)
		return
	}

	respondJSON(w, http.StatusOK, ListingsResponse{Listings: listings, Count: len(listings)})
}

// HandleGetSlotView returns the public view of one slot
// @Summary Get a slot's public view
// @Description Returns the slot's occupancy and, when live, its listing. Draft contents are never exposed here.
// @Tags storefront
// @Produce json
// @Param slotID path int true "Slot ID"
// @Param lang query string false "Preferred language tag, e.g. fr or en"
// @Success 200 {object} storefront.SlotView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /storefront/slots/{slotID} [get]
func (h *StorefrontHandler) HandleGetSlotView(w http.ResponseWriter, r *http.Request) {
	slotID, ok := GetSlotIDParam(r, w)
	if !ok {
		return
	}

	view, err := h.service.GetSlotView(r.Context(), slotID, requestedLanguage(r))
	if err != nil {
		respondServiceError(w, r, "Get slot view", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}
