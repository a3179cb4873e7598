package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ndifor/vitrine/internal/testing/leaktest"
)

//  =============================================================================
// Memory Leak Tests
// =============================================================================
// NOTE: mockBus is defined in resilient_publisher_test.go and reused here

func TestResilientPublisher_ShutdownStopsRetryWorker(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	checker := leaktest.NewGoroutineChecker(t)

	// Fail the first attempt so at least one event travels the retry queue
	bus := &mockBus{
		shouldFail: func(attempt int) bool {
			return attempt == 1
		},
	}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, tmpFile)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), Event{
		Type:    Type("leak_check"),
		Payload: map[string]interface{}{"id": 1},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	// Check for leaks (allow small tolerance)
	checker.Check(1)
}

func TestMemoryBus_PublishNoGoroutineLeak(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(Type("noop"), func(ctx context.Context, evt Event) error {
		return nil
	})

	leaktest.CheckNoGoroutineLeak(t, func() {
		for i := 0; i < 100; i++ {
			_ = bus.Publish(context.Background(), Event{Type: Type("noop")})
		}
	})
}
