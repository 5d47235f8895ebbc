package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks registration decisions.
type Metrics struct {
	Proposals        *prometheus.CounterVec
	Admissions       *prometheus.CounterVec
	VotesCast        prometheus.Counter
	DecisionDuration prometheus.Histogram
}

// New creates registration metrics registered on reg. A nil reg leaves them
// unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Proposals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "surety_registration_proposals_total",
			Help: "Registration calls by outcome",
		}, []string{"outcome"}),
		Admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "surety_registration_admissions_total",
			Help: "Airlines admitted by phase",
		}, []string{"phase"}),
		VotesCast: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "surety_registration_votes_cast_total",
			Help: "Distinct votes recorded in the quorum phase",
		}),
		DecisionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "surety_registration_decision_duration_seconds",
			Help:    "Time to validate and apply one registration call",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Proposals, m.Admissions, m.VotesCast, m.DecisionDuration)
	}
	return m
}

func (m *Metrics) IncrementProposal(outcome string) {
	m.Proposals.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementAdmission(phase string) {
	m.Admissions.WithLabelValues(phase).Inc()
}

func (m *Metrics) IncrementVotesCast() {
	m.VotesCast.Inc()
}

func (m *Metrics) ObserveDecisionDuration(seconds float64) {
	m.DecisionDuration.Observe(seconds)
}
