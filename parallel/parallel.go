// Package parallel distributes per-entity work across goroutines in
// contiguous, non-overlapping blocks. Because entity results in this
// repository are functions of coordinates rather than processing order,
// any worker count and any partition produce identical results.
package parallel

import (
	"log"
	"runtime"
	"sync"
)

// DefaultWorkers returns the worker count used when the caller does not
// specify one.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// ForEach splits n items into one contiguous block per worker and calls
// fn(start, count) for each block on its own goroutine, then joins.
// Blocks differ in size by at most one item. fn must not assume anything
// about the order blocks run in.
func ForEach(workers, n int, fn func(start, count int)) {
	if workers < 1 {
		log.Panicf("worker count must be positive, got %d", workers)
	}

	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup

	start := 0
	left := n
	for w := 0; w < workers; w++ {
		count := left / (workers - w)

		wg.Add(1)
		go func(start, count int) {
			defer wg.Done()
			fn(start, count)
		}(start, count)

		start += count
		left -= count
	}

	wg.Wait()
}
