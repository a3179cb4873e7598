package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Slot errors
	ErrMsgSlotNotFound     = "slot not found"
	ErrMsgInvalidSlotState = "slot state invariant violated"

	// Transition errors
	ErrMsgPreconditionFailed = "transition not allowed from current state"
	ErrMsgVersionConflict    = "slot was modified concurrently"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"

	// Auth errors
	ErrMsgUnauthorized = "unauthorized"

	// Batch errors
	ErrMsgBatchPartialFailure = "batch completed with failures"

	// Database/System errors
	ErrMsgStorage           = "storage error"
	ErrMsgConnectionTimeout = "connection timeout"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Slot errors
	ErrSlotNotFound     = errors.New(ErrMsgSlotNotFound)
	ErrInvalidSlotState = errors.New(ErrMsgInvalidSlotState)

	// Transition errors
	ErrPreconditionFailed = errors.New(ErrMsgPreconditionFailed)
	ErrVersionConflict    = errors.New(ErrMsgVersionConflict)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Auth errors
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)

	// Batch errors
	ErrBatchPartialFailure = errors.New(ErrMsgBatchPartialFailure)

	// Database/System errors
	ErrStorage = errors.New(ErrMsgStorage)
)
