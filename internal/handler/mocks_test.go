package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/ndifor/vitrine/internal/admin"
	"github.com/ndifor/vitrine/internal/audit"
	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/event"
	"github.com/ndifor/vitrine/internal/slot"
	"github.com/ndifor/vitrine/internal/storefront"
)

// MockSlotGuard
type MockSlotGuard struct {
	mock.Mock
}

func (m *MockSlotGuard) Apply(ctx context.Context, slotID int, ev slot.Event) (*domain.Slot, error) {
	args := m.Called(ctx, slotID, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

// MockAdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ApproveDraft(ctx context.Context, slotID int) (*domain.Slot, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

func (m *MockAdminService) RejectDraft(ctx context.Context, slotID int) (*domain.Slot, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

func (m *MockAdminService) SetMaintenance(ctx context.Context, slotID int) (*domain.Slot, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

func (m *MockAdminService) ClearMaintenance(ctx context.Context, slotID int) (*domain.Slot, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

func (m *MockAdminService) RemoveProduct(ctx context.Context, slotID int) (*domain.Slot, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

func (m *MockAdminService) Batch(ctx context.Context, op admin.Operation, slotIDs []int) (*domain.BatchReport, error) {
	args := m.Called(ctx, op, slotIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchReport), args.Error(1)
}

// MockSlotReader
type MockSlotReader struct {
	mock.Mock
}

func (m *MockSlotReader) GetSlot(ctx context.Context, id int) (*domain.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

func (m *MockSlotReader) ListSlots(ctx context.Context) ([]domain.Slot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Slot), args.Error(1)
}

// MockAuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Subscribe(bus event.Bus) error {
	args := m.Called(bus)
	return args.Error(0)
}

func (m *MockAuditService) TransitionsForSlot(ctx context.Context, slotID int, limit int) ([]audit.TransitionRecord, error) {
	args := m.Called(ctx, slotID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.TransitionRecord), args.Error(1)
}

func (m *MockAuditService) QueryTransitions(ctx context.Context, filter audit.TransitionFilter) ([]audit.TransitionRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.TransitionRecord), args.Error(1)
}

func (m *MockAuditService) CleanupOldTransitions(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

// MockReconcilerService
type MockReconcilerService struct {
	mock.Mock
}

func (m *MockReconcilerService) Run(ctx context.Context) (*domain.ReconcileReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconcileReport), args.Error(1)
}

// MockStorefrontService
type MockStorefrontService struct {
	mock.Mock
}

func (m *MockStorefrontService) Subscribe(bus event.Bus) error {
	args := m.Called(bus)
	return args.Error(0)
}

func (m *MockStorefrontService) ListListings(ctx context.Context, lang string) ([]storefront.Listing, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storefront.Listing), args.Error(1)
}

func (m *MockStorefrontService) GetSlotView(ctx context.Context, slotID int, lang string) (*storefront.SlotView, error) {
	args := m.Called(ctx, slotID, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storefront.SlotView), args.Error(1)
}

func (m *MockStorefrontService) CacheStats() storefront.CacheStats {
	args := m.Called()
	return args.Get(0).(storefront.CacheStats)
}

// withURLParam attaches a chi route context carrying one path parameter, so
// handlers can be exercised without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withSlotIDParam(r *http.Request, slotID string) *http.Request {
	return withURLParam(r, "slotID", slotID)
}
