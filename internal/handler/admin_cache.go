package handler

import (
	"net/http"

	"github.com/ndifor/vitrine/internal/storefront"
)

// AdminCacheHandler handles admin cache operations
type AdminCacheHandler struct {
	storefrontService storefront.Service
}

// NewAdminCacheHandler creates a new admin cache handler
func NewAdminCacheHandler(storefrontService storefront.Service) *AdminCacheHandler {
	return &AdminCacheHandler{
		storefrontService: storefrontService,
	}
}

// HandleGetCacheStats returns current storefront cache statistics
// GET /api/v1/admin/cache/stats
// @Summary Get storefront cache stats
// @Description Returns cache hit/miss statistics for monitoring (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} storefront.CacheStats
// @Security ApiKeyAuth
// @Router /admin/cache/stats [get]
func (h *AdminCacheHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.storefrontService.CacheStats()
	respondJSON(w, http.StatusOK, stats)
}
