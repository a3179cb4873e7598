package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ndifor/vitrine/internal/domain"
	"github.com/ndifor/vitrine/internal/event"
	"github.com/ndifor/vitrine/internal/slot"
)

// MockEventBus is a mock implementation of event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func TestService_Subscribe(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	mockBus := new(MockEventBus)

	eventTypes := []event.Type{
		domain.EventTypeDraftSubmitted,
		domain.EventTypeDraftReady,
		domain.EventTypeDraftRejected,
		domain.EventTypeListingPublished,
		domain.EventTypeListingRemoved,
		domain.EventTypeListingExpired,
		domain.EventTypeMaintenanceSet,
		domain.EventTypeMaintenanceCleared,
		domain.EventTypeTransitionRejected,
	}

	for _, et := range eventTypes {
		mockBus.On("Subscribe", et, mock.Anything).Return()
	}

	err := service.Subscribe(mockBus)
	assert.NoError(t, err)
	mockBus.AssertExpectations(t)
}

func TestService_HandleEvent_CommittedTransition(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	evt := event.NewSlotTransitionEvent(
		domain.EventTypeMaintenanceSet, 5,
		domain.SlotStatusEmpty, domain.SlotStatusMaintenance,
		domain.SourceAdmin,
	)

	mockRepo.On("RecordTransition", ctx, mock.MatchedBy(func(rec TransitionRecord) bool {
		return rec.SlotID == 5 &&
			rec.EventType == domain.EventTypeMaintenanceSet &&
			rec.FromStatus == string(domain.SlotStatusEmpty) &&
			rec.ToStatus == string(domain.SlotStatusMaintenance) &&
			rec.Source == domain.SourceAdmin &&
			rec.Payload != nil
	})).Return(nil)

	err := svc.handleEvent(ctx, evt)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_Rejection(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	evt := event.NewTransitionRejectedEvent(
		9, string(slot.EventApproveDraft),
		domain.SlotStatusLive, slot.ReasonSlotOccupied, domain.SourceAdmin,
	)

	mockRepo.On("RecordTransition", ctx, mock.MatchedBy(func(rec TransitionRecord) bool {
		return rec.SlotID == 9 &&
			rec.EventType == domain.EventTypeTransitionRejected &&
			rec.FromStatus == string(domain.SlotStatusLive) &&
			rec.Reason == slot.ReasonSlotOccupied
	})).Return(nil)

	err := svc.handleEvent(ctx, evt)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_SourceFromMetadata(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	// Map payloads without a source field fall back to event metadata.
	evt := event.Event{
		Version:  event.EventSchemaVersion,
		Type:     domain.EventTypeDraftSubmitted,
		Payload:  map[string]interface{}{"slot_id": 3},
		Metadata: domain.TransitionMetadata{Source: domain.SourceSeller},
	}

	mockRepo.On("RecordTransition", ctx, mock.MatchedBy(func(rec TransitionRecord) bool {
		return rec.SlotID == 3 && rec.Source == domain.SourceSeller
	})).Return(nil)

	err := svc.handleEvent(ctx, evt)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_HandleEvent_UndecodablePayloadSkipped(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)

	evt := event.Event{
		Type:    domain.EventTypeDraftSubmitted,
		Payload: make(chan int),
	}

	err := svc.handleEvent(context.Background(), evt)
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "RecordTransition", mock.Anything, mock.Anything)
}

func TestService_HandleEvent_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo).(*service)
	ctx := context.Background()

	wantErr := errors.New("connection refused")
	mockRepo.On("RecordTransition", ctx, mock.Anything).Return(wantErr)

	evt := event.NewSlotTransitionEvent(
		domain.EventTypeListingRemoved, 2,
		domain.SlotStatusLive, domain.SlotStatusEmpty,
		domain.SourceAdmin,
	)

	err := svc.handleEvent(ctx, evt)
	assert.ErrorIs(t, err, wantErr)
}

func TestService_RecordsThroughRealBus(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)
	bus := event.NewMemoryBus()
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(bus))

	mockRepo.On("RecordTransition", ctx, mock.MatchedBy(func(rec TransitionRecord) bool {
		return rec.SlotID == 7 && rec.EventType == domain.EventTypeListingExpired
	})).Return(nil)

	live := domain.LiveListing{
		DraftListing: domain.DraftListing{NameEn: "Raffia bag", NameFr: "Sac en raphia"},
	}
	err := bus.Publish(ctx, event.NewListingExpiredEvent(7, live, domain.SourceReconciler))
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_TransitionsForSlot_ClampsLimit(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetTransitionsBySlot", ctx, 4, DefaultQueryLimit).Return([]TransitionRecord{}, nil).Once()
	_, err := service.TransitionsForSlot(ctx, 4, 0)
	require.NoError(t, err)

	mockRepo.On("GetTransitionsBySlot", ctx, 4, MaxQueryLimit).Return([]TransitionRecord{}, nil).Once()
	_, err = service.TransitionsForSlot(ctx, 4, 9999)
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestService_QueryTransitions_ClampsLimit(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()
	slotID := 4

	mockRepo.On("GetTransitions", ctx, mock.MatchedBy(func(f TransitionFilter) bool {
		return f.SlotID != nil && *f.SlotID == slotID && f.Limit == DefaultQueryLimit
	})).Return([]TransitionRecord{}, nil).Once()
	_, err := service.QueryTransitions(ctx, TransitionFilter{SlotID: &slotID})
	require.NoError(t, err)

	mockRepo.On("GetTransitions", ctx, mock.MatchedBy(func(f TransitionFilter) bool {
		return f.Limit == MaxQueryLimit
	})).Return([]TransitionRecord{}, nil).Once()
	_, err = service.QueryTransitions(ctx, TransitionFilter{Limit: 9999})
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestService_CleanupOldTransitions(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("CleanupOldTransitions", ctx, 90).Return(int64(12), nil)

	count, err := service.CleanupOldTransitions(ctx, 90)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)
	mockRepo.AssertExpectations(t)
}
