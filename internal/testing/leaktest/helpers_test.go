package leaktest

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestGoroutineChecker_NoLeak(t *testing.T) {
	checker := NewGoroutineChecker(t)
	checker.Check(0)
}

func TestGoroutineChecker_ToleranceCoversLongLived(t *testing.T) {
	checker := NewGoroutineChecker(t)

	// One goroutine pinned for the duration of the check, as a component
	// with a lifetime background worker would pin it
	done := make(chan struct{})
	go func() {
		<-done
	}()

	time.Sleep(20 * time.Millisecond)

	checker.Check(2)

	close(done)
}

func TestMemoryChecker_TransientAllocation(t *testing.T) {
	checker := NewMemoryChecker(t)

	buf := make([]byte, 2048)
	_ = buf

	checker.Check(1.0)
}

func TestCheckNoGoroutineLeak_WaitedWorkers(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				time.Sleep(time.Millisecond)
			}()
		}
		wg.Wait()
	})
}

func TestCheckNoMemoryLeak_BoundedChurn(t *testing.T) {
	CheckNoMemoryLeak(t, 1.0, func() {
		for i := 0; i < 100; i++ {
			chunk := make([]byte, 1024)
			_ = chunk
		}
	})
}

func TestWaitForGoroutines_DrainsToTarget(t *testing.T) {
	before := runtime.NumGoroutine()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(10 * time.Millisecond)
		}()
	}
	wg.Wait()

	WaitForGoroutines(t, before, time.Second)
}
