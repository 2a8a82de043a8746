// Package progress reports batch progress on a terminal.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// WorkerProgress tracks progress for individual workers
type WorkerProgress struct {
	WorkerID      int
	JobsCompleted int
	CurrentJob    string
	LastUpdate    time.Time
}

// Tracker collects job progress from pool workers and redraws a one-line
// summary on its writer at most every displayRate.
type Tracker struct {
	mu            sync.Mutex
	out           io.Writer
	workers       map[int]*WorkerProgress
	totalJobs     int
	completedJobs int
	startTime     time.Time
	lastDisplay   time.Time
	displayRate   time.Duration
}

// NewTracker creates a tracker for totalJobs jobs run by workerCount
// workers.
func NewTracker(out io.Writer, workerCount, totalJobs int) *Tracker {
	t := &Tracker{
		out:         out,
		workers:     make(map[int]*WorkerProgress, workerCount),
		totalJobs:   totalJobs,
		startTime:   time.Now(),
		displayRate: 500 * time.Millisecond,
	}
	for i := 0; i < workerCount; i++ {
		t.workers[i] = &WorkerProgress{WorkerID: i, LastUpdate: t.startTime}
	}
	return t
}

// UpdateWorker records that a worker started (completed == false) or
// finished a job.
func (t *Tracker) UpdateWorker(workerID int, job string, completed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := t.workers[workerID]
	if w == nil {
		return
	}

	w.CurrentJob = job
	w.LastUpdate = time.Now()
	if completed {
		w.CurrentJob = ""
		w.JobsCompleted++
		t.completedJobs++
	}

	if time.Since(t.lastDisplay) >= t.displayRate {
		t.display()
		t.lastDisplay = time.Now()
	}
}

func (t *Tracker) display() {
	s := t.stats()

	var eta time.Duration
	if t.completedJobs > 0 {
		perJob := s.Elapsed / time.Duration(t.completedJobs)
		eta = perJob * time.Duration(t.totalJobs-t.completedJobs)
	}

	fmt.Fprintf(t.out, "\033[2K\rProgress: %d/%d (%.1f%%) | Elapsed: %v | ETA: %v",
		s.CompletedJobs, s.TotalJobs, s.Percentage,
		s.Elapsed.Round(time.Second), eta.Round(time.Second))
}

// Finish prints the final summary line.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.stats()
	fmt.Fprintf(t.out, "\033[2K\rProcessed %s of %s images in %v (%.1f/s)\n",
		humanize.Comma(int64(s.CompletedJobs)), humanize.Comma(int64(s.TotalJobs)),
		s.Elapsed.Round(time.Millisecond), s.Rate)
}

// Stats returns current progress statistics
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats()
}

func (t *Tracker) stats() Stats {
	elapsed := time.Since(t.startTime)

	rate := 0.0
	if elapsed.Seconds() > 0 {
		rate = float64(t.completedJobs) / elapsed.Seconds()
	}

	percentage := 100.0
	if t.totalJobs > 0 {
		percentage = float64(t.completedJobs) / float64(t.totalJobs) * 100
	}

	return Stats{
		TotalJobs:     t.totalJobs,
		CompletedJobs: t.completedJobs,
		WorkerCount:   len(t.workers),
		Elapsed:       elapsed,
		Rate:          rate,
		Percentage:    percentage,
	}
}

// Stats contains progress statistics
type Stats struct {
	TotalJobs     int
	CompletedJobs int
	WorkerCount   int
	Elapsed       time.Duration
	Rate          float64 // Jobs per second
	Percentage    float64
}
