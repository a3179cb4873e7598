package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ndifor/vitrine/internal/testing/leaktest"
)

//  =============================================================================
// Memory Leak Tests
// =============================================================================
// NOTE: MockRepository and liveSlotFixture are defined in service_test.go

// TestSlotCache_ChurnStaysBounded verifies the LRU keeps memory flat while
// far more slots than its capacity cycle through it.
func TestSlotCache_ChurnStaysBounded(t *testing.T) {
	cache := newSlotCache(8, time.Minute)

	leaktest.CheckNoMemoryLeak(t, 2.0, func() {
		for i := 0; i < 10000; i++ {
			slot := liveSlotFixture(i, "Churn item", "Article de rotation", 5000)
			cache.SetSlot(i, &slot)

			if i%3 == 0 {
				cache.InvalidateSlot(i)
			}
		}
	})

	stats := cache.GetStats()
	if stats.Size > 8 {
		t.Errorf("cache exceeded its capacity: size=%d", stats.Size)
	}
}

// TestService_RepeatedReads_NoMemoryGrowth hammers the read path with cache
// hits and misses and checks the service itself retains nothing per request.
func TestService_RepeatedReads_NoMemoryGrowth(t *testing.T) {
	mockRepo := new(MockRepository)
	slot := liveSlotFixture(3, "Bronze bracelet", "Bracelet en bronze", 175000)
	mockRepo.On("GetSlot", mock.Anything, 3).Return(&slot, nil)

	svc := NewService(mockRepo, 8, time.Minute)
	ctx := context.Background()

	leaktest.CheckNoMemoryLeak(t, 2.0, func() {
		for i := 0; i < 5000; i++ {
			if _, err := svc.GetSlotView(ctx, 3, "fr"); err != nil {
				t.Fatalf("GetSlotView failed: %v", err)
			}
		}
	})
}
