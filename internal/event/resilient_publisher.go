package event

import (
	"context"
	"sync"
	"time"

	"github.com/ndifor/vitrine/internal/logger"
)

// retryEntry tracks an event waiting for another publish attempt
type retryEntry struct {
	event    Event
	attempts int
	lastErr  error
}

// ResilientPublisher wraps an Event Bus to add retry logic and dead letter
// queuing. Failed publishes are handed to a single background worker that
// retries with exponential backoff; events that exhaust their retries, or
// that arrive while the retry queue is full, are appended to a dead-letter
// file for manual replay.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	wg         sync.WaitGroup

	shutdownOnce sync.Once
}

// NewResilientPublisher creates a ResilientPublisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// PublishWithRetry publishes an event, queuing it for background retry on
// failure. The caller never blocks on retries and never sees the error; a
// lost event surfaces in the dead-letter file, not in the request path.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	select {
	case <-p.shutdown:
		logger.FromContext(ctx).Warn(LogMsgEventDroppedShutdown, "event_type", event.Type)
		return
	default:
	}

	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)
	p.enqueue(retryEntry{event: event, attempts: 1, lastErr: err})
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case p.retryQueue <- entry:
	default:
		log := logger.FromContext(context.Background())
		log.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		if err := p.deadLetter.Write(entry.event, entry.attempts, entry.lastErr); err != nil {
			log.Error(LogMsgDeadLetterWriteFailed, "error", err)
		}
	}
}

// retryWorker processes the retry queue until shutdown, then drains whatever
// is left into the dead-letter file.
func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case entry := <-p.retryQueue:
			p.processRetry(entry)
		case <-p.shutdown:
			p.drainQueue()
			return
		}
	}
}

func (p *ResilientPublisher) processRetry(entry retryEntry) {
	// Retries run outside any request, so they carry a background context
	ctx := context.Background()
	log := logger.FromContext(ctx)

	select {
	case <-time.After(CalculateRetryDelay(p.retryDelay, entry.attempts)):
	case <-p.shutdown:
		if err := p.deadLetter.Write(entry.event, entry.attempts, entry.lastErr); err != nil {
			log.Error(LogMsgDeadLetterWriteFailedS, "error", err)
		}
		return
	}

	err := p.bus.Publish(ctx, entry.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded,
			"event_type", entry.event.Type,
			"attempt", entry.attempts)
		return
	}

	if entry.attempts >= p.maxRetries {
		log.Warn(LogMsgEventRetryExhausted,
			"event_type", entry.event.Type,
			"attempts", entry.attempts)
		if werr := p.deadLetter.Write(entry.event, entry.attempts, err); werr != nil {
			log.Error(LogMsgDeadLetterWriteFailed, "error", werr)
		}
		return
	}

	log.Warn(LogMsgEventRetryFailed,
		"event_type", entry.event.Type,
		"attempt", entry.attempts,
		"error", err)
	p.enqueue(retryEntry{event: entry.event, attempts: entry.attempts + 1, lastErr: err})
}

func (p *ResilientPublisher) drainQueue() {
	log := logger.FromContext(context.Background())

	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			if err := p.deadLetter.Write(entry.event, entry.attempts, entry.lastErr); err != nil {
				log.Error(LogMsgDeadLetterWriteFailedS, "error", err)
			}
			drained++
		default:
			if drained > 0 {
				log.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

// Shutdown stops the retry worker and closes the dead-letter file. Events
// still queued when the context expires are lost.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.FromContext(ctx).Error(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
