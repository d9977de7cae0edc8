// internal/pipeline/parallel.go
package pipeline

import (
	"math"
	"sync"
	"sync/atomic"
)

// stripe is one worker's next index, padded to its own cache line.
type stripe struct {
	next atomic.Int64
	_    [56]byte
}

// ParallelFor calls fn(i, worker) exactly once for every i in [0, n), on
// nWorkers goroutines. Worker w starts on indices w, w+nWorkers, ... and,
// once its stripe is exhausted, steals from the stripe that is furthest
// behind. fn must be safe to call concurrently and in any order.
func ParallelFor(nWorkers, n int, fn func(i, worker int)) {
	if n <= 0 {
		return
	}
	if nWorkers < 1 {
		nWorkers = 1
	}
	if nWorkers == 1 {
		for i := 0; i < n; i++ {
			fn(i, 0)
		}
		return
	}
	stripes := make([]stripe, nWorkers)
	for w := range stripes {
		stripes[w].next.Store(int64(w))
	}
	step, limit := int64(nWorkers), int64(n)

	steal := func() int64 {
		minW, minV := 0, int64(math.MaxInt64)
		for w := range stripes {
			if v := stripes[w].next.Load(); v < minV {
				minW, minV = w, v
			}
		}
		return stripes[minW].next.Add(step) - step
	}

	var wg sync.WaitGroup
	wg.Add(nWorkers)
	for w := 0; w < nWorkers; w++ {
		go func(w int) {
			defer wg.Done()
			own := &stripes[w].next
			for {
				i := own.Add(step) - step
				if i >= limit {
					break
				}
				fn(int(i), w)
			}
			for {
				i := steal()
				if i >= limit {
					return
				}
				fn(int(i), w)
			}
		}(w)
	}
	wg.Wait()
}
