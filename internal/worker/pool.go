// Package worker runs batch jobs on a fixed number of goroutines.
package worker

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/alde/photoedit/pkg/progress"
)

// Job is one unit of batch work, usually one image.
type Job interface {
	Process(ctx context.Context) error
	ID() string
}

// Result is the outcome of one job.
type Result struct {
	JobID    string
	Error    error
	Duration time.Duration
}

// Pool feeds submitted jobs to its workers. Each job runs on exactly one
// worker; jobs share nothing through the pool.
type Pool struct {
	workerCount int
	jobs        chan Job
	results     chan Result
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	progress    *progress.Tracker
}

// NewPool creates a pool bound to ctx. workerCount <= 0 means one worker
// per CPU.
func NewPool(ctx context.Context, workerCount int) *Pool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workerCount: workerCount,
		jobs:        make(chan Job, workerCount*2),
		results:     make(chan Result, workerCount*2),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// WithProgress reports every job start and finish to tracker.
func (p *Pool) WithProgress(tracker *progress.Tracker) *Pool {
	p.progress = tracker
	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop waits for queued jobs to finish and closes Results.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
	p.cancel()

	if p.progress != nil {
		p.progress.Finish()
	}
	close(p.results)
}

// Submit queues a job. Once the pool is cancelled the job is not run and
// a cancellation result is reported for it instead. Submit blocks while the
// queue is full, so Results must be drained concurrently.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	case <-p.ctx.Done():
		p.results <- Result{
			JobID: job.ID(),
			Error: p.ctx.Err(),
		}
	}
}

// Results returns the results channel
func (p *Pool) Results() <-chan Result {
	return p.results
}

// worker runs queued jobs until the queue is closed. Jobs dequeued after
// cancellation are reported as cancelled without running, so every
// submitted job yields exactly one result.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for job := range p.jobs {
		if err := p.ctx.Err(); err != nil {
			p.results <- Result{JobID: job.ID(), Error: err}
			continue
		}

		if p.progress != nil {
			p.progress.UpdateWorker(id, job.ID(), false)
		}

		start := time.Now()
		err := job.Process(p.ctx)

		if p.progress != nil {
			p.progress.UpdateWorker(id, job.ID(), true)
		}

		p.results <- Result{
			JobID:    job.ID(),
			Error:    err,
			Duration: time.Since(start),
		}
	}
}

// WorkerCount returns the number of workers in the pool
func (p *Pool) WorkerCount() int {
	return p.workerCount
}
