package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleManualCleanup_Success(t *testing.T) {
	svc := new(MockAuditService)
	h := NewAdminCleanupHandler(svc, 90)

	svc.On("CleanupOldTransitions", mock.Anything, 90).Return(int64(37), nil)

	req := httptest.NewRequest("POST", "/admin/audit/cleanup", nil)
	w := httptest.NewRecorder()

	h.HandleManualCleanup(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"records_removed":37`)
	svc.AssertExpectations(t)
}

func TestHandleManualCleanup_UsesConfiguredRetention(t *testing.T) {
	svc := new(MockAuditService)
	h := NewAdminCleanupHandler(svc, 30)

	svc.On("CleanupOldTransitions", mock.Anything, 30).Return(int64(0), nil)

	req := httptest.NewRequest("POST", "/admin/audit/cleanup", nil)
	w := httptest.NewRecorder()

	h.HandleManualCleanup(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	svc.AssertExpectations(t)
}

func TestHandleManualCleanup_ServiceError(t *testing.T) {
	svc := new(MockAuditService)
	h := NewAdminCleanupHandler(svc, 90)

	svc.On("CleanupOldTransitions", mock.Anything, 90).Return(int64(0), errors.New("database error"))

	req := httptest.NewRequest("POST", "/admin/audit/cleanup", nil)
	w := httptest.NewRecorder()

	h.HandleManualCleanup(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, w.Body.String(), "Failed to clean up audit records")
}
