// Package compute provides the demo computations and the worker pool that
// keeps CPU-bound work from monopolizing request-serving goroutines.
package compute

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Computation sizes. The sums are deterministic: light yields 49,995,000 and
// heavy yields 49,999,995,000,000.
const (
	// LightSize is the number of terms summed by the light computation.
	LightSize = 10_000
	// HeavySize is the number of terms summed by the heavy computation.
	HeavySize = 10_000_000
)

// Computation type labels reported in responses and metrics.
const (
	// TypeLight labels the inline lightweight computation.
	TypeLight = "async"
	// TypeHeavy labels the CPU-intensive offloaded computation.
	TypeHeavy = "cpu-intensive"
)

// LightSum computes the light summation inline.
func LightSum() int64 {
	return sumRange(LightSize)
}

// HeavySum computes the heavy summation. Callers should run it through a Pool
// so concurrent heavy requests cannot starve the scheduler.
func HeavySum() int64 {
	return sumRange(HeavySize)
}

// sumRange sums the integers 0..n-1 with an explicit loop. The loop is the
// point: it burns CPU so the profiler and tracer have something to observe.
func sumRange(n int64) int64 {
	var total int64
	for i := int64(0); i < n; i++ {
		total += i
	}
	return total
}

// Pool admits CPU-bound jobs through a weighted semaphore. Pool admission
// bounds how many heavy computations run at once; the remaining scheduler
// threads keep serving light requests.
type Pool struct {
	sem  *semaphore.Weighted
	size int64
}

// NewPool creates a pool with the given number of workers. A non-positive
// size defaults to GOMAXPROCS-1 with a floor of one worker.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0) - 1
		if size < 1 {
			size = 1
		}
	}
	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: int64(size),
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return int(p.size)
}

// Run executes fn on a pool worker and returns its result. Admission waits
// until a worker is free or ctx is done; a cancelled or expired context
// during admission or execution aborts the call. A job already running when
// its caller gives up finishes in the background and releases its worker.
func (p *Pool) Run(ctx context.Context, fn func() int64) (int64, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return 0, fmt.Errorf("acquire compute worker: %w", err)
	}

	resultCh := make(chan int64, 1)
	go func() {
		defer p.sem.Release(1)
		resultCh <- fn()
	}()

	select {
	case result := <-resultCh:
		return result, nil
	case <-ctx.Done():
		return 0, fmt.Errorf("computation aborted: %w", ctx.Err())
	}
}
