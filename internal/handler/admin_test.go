package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ndifor/vitrine/internal/audit"
	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/slot"
)

func liveSlotFixture(id int) *domain.Slot {
	now := time.Now()
	return &domain.Slot{
		ID:         id,
		SlotStatus: domain.SlotStatusLive,
		Live: &domain.LiveListing{
			DraftListing: domain.DraftListing{
				NameEn:        "Carved stool",
				NameFr:        "Tabouret sculpté",
				PriceMinor:    890000,
				Currency:      "XAF",
				SellerContact: "+237650000002",
				SubmittedAt:   now,
			},
			StartTime: now,
			EndTime:   now.AddDate(0, 0, 7),
		},
		UpdatedAt: now,
	}
}

func TestHandleApproveDraft(t *testing.T) {
	tests := []struct {
		name           string
		slotID         string
		setupMocks     func(*MockAdminService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid Slot ID",
			slotID:         "-2",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidSlotID,
		},
		{
			name:   "Draft Not Ready",
			slotID: "4",
			setupMocks: func(svc *MockAdminService) {
				svc.On("ApproveDraft", mock.Anything, 4).
					Return(nil, slot.PreconditionError{SlotID: 4, Event: slot.EventApproveDraft, Reason: slot.ReasonDraftNotReady})
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   slot.ReasonDraftNotReady,
		},
		{
			name:   "Slot Occupied",
			slotID: "4",
			setupMocks: func(svc *MockAdminService) {
				svc.On("ApproveDraft", mock.Anything, 4).
					Return(nil, slot.PreconditionError{SlotID: 4, Event: slot.EventApproveDraft, Reason: slot.ReasonSlotOccupied})
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   slot.ReasonSlotOccupied,
		},
		{
			name:   "Slot Not Found",
			slotID: "999",
			setupMocks: func(svc *MockAdminService) {
				svc.On("ApproveDraft", mock.Anything, 999).Return(nil, domain.ErrSlotNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgSlotNotFoundError,
		},
		{
			name:   "Success",
			slotID: "4",
			setupMocks: func(svc *MockAdminService) {
				svc.On("ApproveDraft", mock.Anything, 4).Return(liveSlotFixture(4), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgDraftApprovedSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAdminService)
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			handler := NewAdminHandler(svc, new(MockSlotReader), new(MockAuditService))

			req := withSlotIDParam(httptest.NewRequest("POST", "/admin/slots/"+tt.slotID+"/approve", nil), tt.slotID)
			rec := httptest.NewRecorder()

			handler.HandleApproveDraft(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			svc.AssertExpectations(t)
		})
	}
}

// The remaining single operations share handleTransition; one success and one
// rejection each is enough to pin their wiring.
func TestHandleSingleOperations(t *testing.T) {
	emptySlot := &domain.Slot{ID: 2, SlotStatus: domain.SlotStatusEmpty, UpdatedAt: time.Now()}
	maintSlot := &domain.Slot{ID: 2, SlotStatus: domain.SlotStatusMaintenance, UpdatedAt: time.Now()}

	tests := []struct {
		name           string
		method         string
		invoke         func(*AdminHandler, http.ResponseWriter, *http.Request)
		setupMocks     func(*MockAdminService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Reject Success",
			invoke: (*AdminHandler).HandleRejectDraft,
			setupMocks: func(svc *MockAdminService) {
				svc.On("RejectDraft", mock.Anything, 2).Return(emptySlot, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgDraftRejectedSuccess,
		},
		{
			name:   "Reject Not Ready",
			invoke: (*AdminHandler).HandleRejectDraft,
			setupMocks: func(svc *MockAdminService) {
				svc.On("RejectDraft", mock.Anything, 2).
					Return(nil, slot.PreconditionError{SlotID: 2, Event: slot.EventRejectDraft, Reason: slot.ReasonDraftNotReady})
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   slot.ReasonDraftNotReady,
		},
		{
			name:   "Set Maintenance Success",
			invoke: (*AdminHandler).HandleSetMaintenance,
			setupMocks: func(svc *MockAdminService) {
				svc.On("SetMaintenance", mock.Anything, 2).Return(maintSlot, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgMaintenanceSetSuccess,
		},
		{
			name:   "Set Maintenance On Occupied Slot",
			invoke: (*AdminHandler).HandleSetMaintenance,
			setupMocks: func(svc *MockAdminService) {
				svc.On("SetMaintenance", mock.Anything, 2).
					Return(nil, slot.PreconditionError{SlotID: 2, Event: slot.EventSetMaintenance, Reason: slot.ReasonSlotNotEmpty})
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   slot.ReasonSlotNotEmpty,
		},
		{
			name:   "Clear Maintenance Success",
			invoke: (*AdminHandler).HandleClearMaintenance,
			setupMocks: func(svc *MockAdminService) {
				svc.On("ClearMaintenance", mock.Anything, 2).Return(emptySlot, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgMaintenanceClearedSucces,
		},
		{
			name:   "Remove Product Success",
			invoke: (*AdminHandler).HandleRemoveProduct,
			setupMocks: func(svc *MockAdminService) {
				svc.On("RemoveProduct", mock.Anything, 2).Return(emptySlot, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgProductRemovedSuccess,
		},
		{
			name:   "Remove Product Not Live",
			invoke: (*AdminHandler).HandleRemoveProduct,
			setupMocks: func(svc *MockAdminService) {
				svc.On("RemoveProduct", mock.Anything, 2).
					Return(nil, slot.PreconditionError{SlotID: 2, Event: slot.EventRemoveProduct, Reason: slot.ReasonNotLive})
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   slot.ReasonNotLive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAdminService)
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			handler := NewAdminHandler(svc, new(MockSlotReader), new(MockAuditService))

			req := withSlotIDParam(httptest.NewRequest("POST", "/admin/slots/2/op", nil), "2")
			rec := httptest.NewRecorder()

			tt.invoke(handler, rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleListSlots(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		reader := new(MockSlotReader)
		reader.On("ListSlots", mock.Anything).Return([]domain.Slot{
			{ID: 1, SlotStatus: domain.SlotStatusEmpty},
			{ID: 2, SlotStatus: domain.SlotStatusMaintenance},
		}, nil)
		handler := NewAdminHandler(new(MockAdminService), reader, new(MockAuditService))

		req := httptest.NewRequest("GET", "/admin/slots", nil)
		rec := httptest.NewRecorder()

		handler.HandleListSlots(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"count":2`)
		reader.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		reader := new(MockSlotReader)
		reader.On("ListSlots", mock.Anything).Return(nil, domain.ErrStorage)
		handler := NewAdminHandler(new(MockAdminService), reader, new(MockAuditService))

		req := httptest.NewRequest("GET", "/admin/slots", nil)
		rec := httptest.NewRecorder()

		handler.HandleListSlots(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgGenericServerError)
	})
}

func TestHandleGetSlot(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		reader := new(MockSlotReader)
		reader.On("GetSlot", mock.Anything, 4).Return(liveSlotFixture(4), nil)
		handler := NewAdminHandler(new(MockAdminService), reader, new(MockAuditService))

		req := withSlotIDParam(httptest.NewRequest("GET", "/admin/slots/4", nil), "4")
		rec := httptest.NewRecorder()

		handler.HandleGetSlot(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Carved stool")
		assert.Contains(t, rec.Body.String(), "Tabouret sculpté")
	})

	t.Run("Not Found", func(t *testing.T) {
		reader := new(MockSlotReader)
		reader.On("GetSlot", mock.Anything, 999).Return(nil, domain.ErrSlotNotFound)
		handler := NewAdminHandler(new(MockAdminService), reader, new(MockAuditService))

		req := withSlotIDParam(httptest.NewRequest("GET", "/admin/slots/999", nil), "999")
		rec := httptest.NewRecorder()

		handler.HandleGetSlot(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgSlotNotFoundError)
	})
}

func TestHandleSlotAudit(t *testing.T) {
	records := []audit.TransitionRecord{
		{ID: 2, SlotID: 7, EventType: domain.EventTypeListingExpired, Source: domain.SourceReconciler},
		{ID: 1, SlotID: 7, EventType: domain.EventTypeListingPublished, Source: domain.SourceAdmin},
	}

	tests := []struct {
		name           string
		slotID         string
		limit          string
		setupMocks     func(*MockAuditService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid Limit",
			slotID:         "7",
			limit:          "abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidLimit,
		},
		{
			name:   "Default Limit",
			slotID: "7",
			setupMocks: func(a *MockAuditService) {
				a.On("TransitionsForSlot", mock.Anything, 7, audit.DefaultQueryLimit).Return(records, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   domain.EventTypeListingExpired,
		},
		{
			name:   "Explicit Limit",
			slotID: "7",
			limit:  "5",
			setupMocks: func(a *MockAuditService) {
				a.On("TransitionsForSlot", mock.Anything, 7, 5).Return(records, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":2`,
		},
		{
			name:   "Service Error",
			slotID: "7",
			setupMocks: func(a *MockAuditService) {
				a.On("TransitionsForSlot", mock.Anything, 7, audit.DefaultQueryLimit).
					Return(nil, errors.New("query timeout"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "query timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auditSvc := new(MockAuditService)
			if tt.setupMocks != nil {
				tt.setupMocks(auditSvc)
			}
			handler := NewAdminHandler(new(MockAdminService), new(MockSlotReader), auditSvc)

			target := "/admin/slots/" + tt.slotID + "/audit"
			if tt.limit != "" {
				target += "?limit=" + tt.limit
			}
			req := withSlotIDParam(httptest.NewRequest("GET", target, nil), tt.slotID)
			rec := httptest.NewRecorder()

			handler.HandleSlotAudit(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			auditSvc.AssertExpectations(t)
		})
	}
}
