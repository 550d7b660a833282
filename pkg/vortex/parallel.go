package vortex

import (
	"runtime"
	"sync"
)

// minRowsPerWorker keeps small grids on the calling goroutine, where the
// spawn cost would dominate the sweep.
const minRowsPerWorker = 16

// parallelRows calls fn(y) for every y in [lo, hi), splitting the range into
// contiguous chunks. workers <= 0 means GOMAXPROCS. fn must only write cells
// of row y.
func parallelRows(lo, hi, workers int, fn func(y int)) {
	total := hi - lo
	if total <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if total/minRowsPerWorker < workers {
		workers = total / minRowsPerWorker
	}
	if workers <= 1 {
		for y := lo; y < hi; y++ {
			fn(y)
		}
		return
	}

	chunk := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		s := lo + w*chunk
		if s >= hi {
			break
		}
		e := s + chunk
		if e > hi {
			e = hi
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for y := s; y < e; y++ {
				fn(y)
			}
		}(s, e)
	}
	wg.Wait()
}
