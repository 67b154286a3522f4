package pipeline

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"

	"encsweep/internal/model"
)

// RuntimeError is a job whose goroutine panicked or never reported.
type RuntimeError struct {
	JobID string
	Value any
	Stack []byte
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("job %s: runtime failure: %v", e.JobID, e.Value)
}

// Collector holds one outcome slot per job. It is safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	outcomes []model.Outcome
	recorded []bool
}

// NewCollector returns a collector for n jobs.
func NewCollector(n int) *Collector {
	return &Collector{
		outcomes: make([]model.Outcome, n),
		recorded: make([]bool, n),
	}
}

// Record stores the outcome of job i. A second outcome for the same slot is
// rejected.
func (c *Collector) Record(i int, o model.Outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.outcomes) {
		return fmt.Errorf("collector: index %d out of range [0,%d)", i, len(c.outcomes))
	}
	if c.recorded[i] {
		return fmt.Errorf("collector: outcome %d already recorded", i)
	}
	c.outcomes[i] = o
	c.recorded[i] = true
	return nil
}

// Missing lists the slots with no outcome yet.
func (c *Collector) Missing() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var idx []int
	for i, ok := range c.recorded {
		if !ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// Outcomes returns a copy of the outcomes in job order.
func (c *Collector) Outcomes() []model.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Outcome, len(c.outcomes))
	copy(out, c.outcomes)
	return out
}

// RunFunc executes one job and always returns its outcome.
type RunFunc func(ctx context.Context, job model.Job) model.Outcome

// RunAll starts every job at once and waits for all of them. Outcome i of the
// result belongs to jobs[i] whatever order the jobs finish in. A panicking job
// yields a RuntimeError outcome; siblings keep running. There is no cross-job
// cancellation: ctx is handed to each job untouched.
//
// The returned error is non-nil only if the collector was misused.
func RunAll(ctx context.Context, jobs []model.Job, run RunFunc, c *Collector) ([]model.Outcome, error) {
	if c == nil {
		c = NewCollector(len(jobs))
	}

	var g errgroup.Group
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = c.Record(i, model.Failure(job, &RuntimeError{JobID: job.ID, Value: r, Stack: debug.Stack()}))
				}
			}()
			return c.Record(i, run(ctx, job))
		})
	}
	err := g.Wait()

	for _, i := range c.Missing() {
		if i < len(jobs) {
			_ = c.Record(i, model.Failure(jobs[i], &RuntimeError{JobID: jobs[i].ID, Value: "no outcome recorded"}))
		}
	}
	return c.Outcomes(), err
}
