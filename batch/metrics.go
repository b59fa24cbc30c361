package batch

import "github.com/prometheus/client_golang/prometheus"

// metrics tracks write-behind activity.
type metrics struct {
	enqueuedOps  prometheus.Counter
	flushedUnits prometheus.Counter
	failedUnits  prometheus.Counter
	clearedUnits prometheus.Counter
}

// newMetrics builds the counters and registers them when reg is non-nil.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		enqueuedOps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "terrace",
			Subsystem: "writer",
			Name:      "enqueued_operations_total",
			Help:      "Operations accepted into the write-behind queue.",
		}),
		flushedUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "terrace",
			Subsystem: "writer",
			Name:      "flushed_units_total",
			Help:      "Batch units executed successfully.",
		}),
		failedUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "terrace",
			Subsystem: "writer",
			Name:      "failed_units_total",
			Help:      "Batch units abandoned after an execution error.",
		}),
		clearedUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "terrace",
			Subsystem: "writer",
			Name:      "cleared_units_total",
			Help:      "Batch units dropped by Clear without executing.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.enqueuedOps, m.flushedUnits, m.failedUnits, m.clearedUnits)
	}
	return m
}
