// Package pipeline runs work on a fixed set of goroutines created per call.
//
// ParallelFor spreads an index range over workers that claim indices from
// striped atomic counters and steal from each other when their stripe runs
// dry; it gives no ordering. Run drives workers through ordered steps so
// that the unit of work started first finishes each step first, while
// later units may already run earlier steps.
package pipeline
