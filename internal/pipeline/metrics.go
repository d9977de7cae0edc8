// internal/pipeline/metrics.go
package pipeline

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by Run. A nil *Metrics
// records nothing.
type Metrics struct {
	steps   *prometheus.CounterVec
	nils    *prometheus.CounterVec
	seconds *prometheus.HistogramVec
	waits   *prometheus.HistogramVec
	drops   prometheus.Counter
}

// NewMetrics creates the pipeline collectors under namespace and registers
// them with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "steps_total",
			Help: "Step executions by step number.",
		}, []string{"step"}),
		nils: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "nil_results_total",
			Help: "Step executions that returned no output.",
		}, []string{"step"}),
		seconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "step_seconds",
			Help:    "Time spent inside step functions.",
			Buckets: prometheus.ExponentialBuckets(1e-4, 4, 10),
		}, []string{"step"}),
		waits: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "order_wait_seconds",
			Help:    "Time a worker waited for earlier slots before starting a step.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"step"}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "pipeline", Name: "dropped_units_total",
			Help: "Units abandoned after a nil result at an intermediate step.",
		}),
	}
	for _, c := range []prometheus.Collector{m.steps, m.nils, m.seconds, m.waits, m.drops} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeStep(step int, d time.Duration, isNil bool) {
	if m == nil {
		return
	}
	l := strconv.Itoa(step)
	m.steps.WithLabelValues(l).Inc()
	m.seconds.WithLabelValues(l).Observe(d.Seconds())
	if isNil {
		m.nils.WithLabelValues(l).Inc()
	}
}

func (m *Metrics) observeWait(step int, d time.Duration) {
	if m == nil {
		return
	}
	m.waits.WithLabelValues(strconv.Itoa(step)).Observe(d.Seconds())
}

func (m *Metrics) dropped() {
	if m == nil {
		return
	}
	m.drops.Inc()
}
