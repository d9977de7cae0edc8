// internal/pipeline/scheduler.go
package pipeline

import (
	"sync"
	"time"
)

// StepFunc runs one step for one unit of work. Step 0 receives nil and
// produces a new unit; returning nil there means the input is exhausted.
// Later steps receive the previous step's output.
type StepFunc[T any] func(step int, in *T) *T

// Phase tells whether an Event marks the start or the end of a step.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseDone
)

// Event is reported to an observer around every step execution.
type Event struct {
	Worker int
	Slot   int64 // order in which the unit entered step 0
	Step   int
	Phase  Phase
	Nil    bool // PhaseDone only: the step returned nil
}

// Option configures Run.
type Option func(*scheduler)

// WithDropOnNil makes a nil result from a step other than step 0 drop
// that unit only; the worker then starts a new unit. Without it the
// worker leaves the pipeline.
func WithDropOnNil() Option {
	return func(s *scheduler) { s.dropOnNil = true }
}

// WithObserver registers fn to be called, outside the scheduler lock,
// before and after every step.
func WithObserver(fn func(Event)) Option {
	return func(s *scheduler) { s.observe = fn }
}

// WithMetrics records step counts, durations and ordering waits in m.
func WithMetrics(m *Metrics) Option {
	return func(s *scheduler) { s.metrics = m }
}

type worker struct {
	step  int
	index int64
}

type scheduler struct {
	mu      sync.Mutex
	cv      *sync.Cond
	workers []worker
	index   int64 // next slot index
	nSteps  int

	dropOnNil bool
	observe   func(Event)
	metrics   *Metrics
}

// Run drives nWorkers goroutines through nSteps ordered steps until every
// worker has left the pipeline. A worker may start a step only when no
// other worker holding an earlier slot is at or before that step, so step
// s of slot j always completes before step s of slot j+1 begins. A worker
// whose step 0 returns nil leaves; a worker finishing the last step (or
// dropping its unit) takes a fresh slot and starts over at step 0.
func Run[T any](nWorkers, nSteps int, fn StepFunc[T], opts ...Option) {
	if nWorkers < 1 {
		nWorkers = 1
	}
	if nSteps < 1 {
		return
	}
	s := &scheduler{nSteps: nSteps, workers: make([]worker, nWorkers)}
	s.cv = sync.NewCond(&s.mu)
	for _, o := range opts {
		o(s)
	}
	for i := range s.workers {
		s.workers[i].index = s.index
		s.index++
	}

	var wg sync.WaitGroup
	wg.Add(nWorkers)
	for i := 0; i < nWorkers; i++ {
		go func(id int) {
			defer wg.Done()
			runWorker(s, id, fn)
		}(i)
	}
	wg.Wait()
}

// blocked reports whether another worker with an earlier slot is at or
// before worker id's step. Callers hold s.mu.
func (s *scheduler) blocked(id int) bool {
	me := s.workers[id]
	for i, w := range s.workers {
		if i != id && w.step <= me.step && w.index < me.index {
			return true
		}
	}
	return false
}

func runWorker[T any](s *scheduler, id int, fn StepFunc[T]) {
	var data *T
	for {
		s.mu.Lock()
		if s.workers[id].step >= s.nSteps {
			s.mu.Unlock()
			return
		}
		waitStart := time.Now()
		for s.blocked(id) {
			s.cv.Wait()
		}
		me := s.workers[id]
		s.mu.Unlock()
		s.metrics.observeWait(me.step, time.Since(waitStart))

		if s.observe != nil {
			s.observe(Event{Worker: id, Slot: me.index, Step: me.step, Phase: PhaseStart})
		}
		in := data
		if me.step == 0 {
			in = nil
		}
		began := time.Now()
		data = fn(me.step, in)
		s.metrics.observeStep(me.step, time.Since(began), data == nil)
		if s.observe != nil {
			s.observe(Event{Worker: id, Slot: me.index, Step: me.step, Phase: PhaseDone, Nil: data == nil})
		}

		s.mu.Lock()
		next := s.advance(me.step, data == nil)
		s.workers[id].step = next
		if next == 0 {
			s.workers[id].index = s.index
			s.index++
		}
		s.cv.Broadcast()
		s.mu.Unlock()
	}
}

// advance returns the step a worker moves to after finishing step.
func (s *scheduler) advance(step int, isNil bool) int {
	last := step == s.nSteps-1
	switch {
	case step == 0 && isNil:
		return s.nSteps
	case last || !isNil:
		return (step + 1) % s.nSteps
	case s.dropOnNil && step > 0:
		s.metrics.dropped()
		return 0
	default:
		return s.nSteps
	}
}
