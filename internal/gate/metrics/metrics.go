package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	GateChecksTotal   *prometheus.CounterVec
	GateFailuresTotal *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		GateChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctrine_gate_checks_total",
			Help: "Total number of admissibility checks run, by kind and verdict",
		}, []string{"kind", "verdict"}),
		GateFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctrine_gate_failures_total",
			Help: "Total number of gate failures recorded, by failure class",
		}, []string{"class"}),
	}
}

func (m *Metrics) ObserveCheck(kind string, accepted bool) {
	verdict := "accepted"
	if !accepted {
		verdict = "rejected"
	}
	m.GateChecksTotal.WithLabelValues(kind, verdict).Inc()
}

func (m *Metrics) ObserveFailure(class string) {
	m.GateFailuresTotal.WithLabelValues(class).Inc()
}
