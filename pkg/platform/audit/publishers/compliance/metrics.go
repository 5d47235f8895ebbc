package compliance

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks audit persistence.
type Metrics struct {
	EventsEmitted   prometheus.Counter
	PersistFailures prometheus.Counter
	PersistDuration prometheus.Histogram
}

// NewMetrics creates audit metrics registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "surety_audit_events_emitted_total",
			Help: "Total number of audit events persisted",
		}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "surety_audit_persist_failures_total",
			Help: "Total number of audit events that failed to persist",
		}),
		PersistDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "surety_audit_persist_duration_seconds",
			Help:    "Duration of synchronous audit writes",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.EventsEmitted, m.PersistFailures, m.PersistDuration)
	}
	return m
}

func (m *Metrics) IncEventsEmitted()   { m.EventsEmitted.Inc() }
func (m *Metrics) IncPersistFailures() { m.PersistFailures.Inc() }
func (m *Metrics) ObservePersistDuration(seconds float64) {
	m.PersistDuration.Observe(seconds)
}
