// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"runtime"
)

// EffectiveThreads resolves a --threads value: 0 means every CPU.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ValidateBatching clamps the batch size so every seeding thread gets
// work, returning the size to use and any warnings. A batch smaller than
// the thread count leaves threads idle in every round.
func ValidateBatching(batchSize, threads int) (int, []string) {
	var warns []string
	if batchSize < 1 {
		batchSize = 1
	}
	if batchSize < threads {
		warns = append(warns, fmt.Sprintf("--batch-size %d is below --threads %d; raising to %d", batchSize, threads, threads))
		batchSize = threads
	}
	return batchSize, warns
}

// WriterBuffer sizes the channel between the pipeline and the writer.
func WriterBuffer(threads int) int { return threads * 4 }
