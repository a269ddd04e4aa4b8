package physics

import (
	"runtime"
	"sync"
)

// sequentialThreshold is the per-worker iteration count below which
// ParallelFor falls back to running the range sequentially on the calling
// goroutine, avoiding goroutine-spawn overhead for small ranges.
const sequentialThreshold = 4

// WorkScheduler runs a data-parallel map over a particle index range.
// body(i) must touch only index-i outputs; the scheduler makes no
// ordering guarantee between iterations. The spatial-grid rebuild is never
// run through a WorkScheduler: appending to a shared cell list would
// require synchronization the contract explicitly forbids.
type WorkScheduler struct {
	workers int
}

// NewWorkScheduler creates a scheduler with worker count approximating
// hardware parallelism.
func NewWorkScheduler() *WorkScheduler {
	w := runtime.GOMAXPROCS(0)
	if w < 1 {
		w = 1
	}
	return &WorkScheduler{workers: w}
}

// Workers reports the configured worker count.
func (s *WorkScheduler) Workers() int {
	return s.workers
}

// ParallelFor invokes body(i) for every i in [begin, end). For ranges
// smaller than 4*workers iterations it runs sequentially on the caller's
// goroutine; otherwise it partitions the range into contiguous shards, one
// per worker, and blocks until every shard completes (a barrier).
func (s *WorkScheduler) ParallelFor(begin, end int, body func(i int)) {
	n := end - begin
	if n <= 0 {
		return
	}
	if n < sequentialThreshold*s.workers {
		for i := begin; i < end; i++ {
			body(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (n + s.workers - 1) / s.workers
	for w := 0; w < s.workers; w++ {
		lo := begin + w*chunk
		hi := lo + chunk
		if lo >= end {
			break
		}
		if hi > end {
			hi = end
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				body(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
