package audit

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) RecordTransition(ctx context.Context, rec TransitionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepository) GetTransitions(ctx context.Context, filter TransitionFilter) ([]TransitionRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TransitionRecord), args.Error(1)
}

func (m *MockRepository) GetTransitionsBySlot(ctx context.Context, slotID int, limit int) ([]TransitionRecord, error) {
	args := m.Called(ctx, slotID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]TransitionRecord), args.Error(1)
}

func (m *MockRepository) CleanupOldTransitions(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}
