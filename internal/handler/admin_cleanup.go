package handler

import (
	"net/http"

	"github.com/ndifor/vitrine/internal/audit"
	"github.com/ndifor/vitrine/internal/logger"
)

// AdminCleanupHandler handles admin endpoints for audit retention management
type AdminCleanupHandler struct {
	auditService  audit.Service
	retentionDays int
}

// NewAdminCleanupHandler creates a new AdminCleanupHandler
func NewAdminCleanupHandler(auditService audit.Service, retentionDays int) *AdminCleanupHandler {
	return &AdminCleanupHandler{
		auditService:  auditService,
		retentionDays: retentionDays,
	}
}

// HandleManualCleanup manually triggers an audit retention cleanup
// POST /api/v1/admin/audit/cleanup
// @Summary Manually trigger audit cleanup
// @Description Removes transition records older than the configured retention period without waiting for the scheduled run
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/audit/cleanup [post]
func (h *AdminCleanupHandler) HandleManualCleanup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info("Manual audit cleanup triggered", "retention_days", h.retentionDays)

	recordsRemoved, err := h.auditService.CleanupOldTransitions(r.Context(), h.retentionDays)
	if err != nil {
		log.Error("Manual audit cleanup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to clean up audit records")
		return
	}

	log.Info("Manual audit cleanup completed", "records_removed", recordsRemoved)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         "Audit cleanup completed",
		"records_removed": recordsRemoved,
	})
}
