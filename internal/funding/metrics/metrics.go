package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks bond activity.
type Metrics struct {
	Deposits       *prometheus.CounterVec
	AmountPosted   prometheus.Counter
	AirlinesFunded prometheus.Counter
}

// New creates funding metrics registered on reg. A nil reg leaves them
// unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Deposits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "surety_funding_deposits_total",
			Help: "Bond deposits by outcome",
		}, []string{"outcome"}),
		AmountPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "surety_funding_amount_posted_total",
			Help: "Cumulative bonded amount accepted across all airlines",
		}),
		AirlinesFunded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "surety_funding_airlines_funded_total",
			Help: "Airlines whose bond reached the funding threshold",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Deposits, m.AmountPosted, m.AirlinesFunded)
	}
	return m
}

func (m *Metrics) IncrementDeposit(outcome string) {
	m.Deposits.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AddAmountPosted(amount float64) {
	m.AmountPosted.Add(amount)
}

func (m *Metrics) IncrementAirlinesFunded() {
	m.AirlinesFunded.Inc()
}
