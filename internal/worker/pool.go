package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/ndifor/vitrine/internal/logger"
)

// Job is a unit of background work, e.g. an audit retention sweep.
type Job interface {
	Process(ctx context.Context) error
}

// Pool runs jobs from a bounded queue on a fixed set of goroutines.
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
}

func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
	}
}

// Start launches the worker goroutines. Call Stop to release them.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

// run drains the queue until Stop closes the quit channel. A failing job is
// logged with its concrete type and the loop keeps going.
func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			ctx := context.Background()
			if err := job.Process(ctx); err != nil {
				logger.FromContext(ctx).Error(LogMsgWorkerJobFailed,
					"job", fmt.Sprintf("%T", job),
					"error", err)
			}
		case <-p.quit:
			return
		}
	}
}

// Enqueue adds a job to the queue, blocking while the queue is full.
func (p *Pool) Enqueue(job Job) {
	p.jobQueue <- job
}

// Stop releases the workers after their in-flight jobs finish. Jobs still
// queued when Stop is called may be dropped.
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}
