package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ResolveRequestsTotal *prometheus.CounterVec
	ResolveFailuresTotal *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		ResolveRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctrine_resolver_requests_total",
			Help: "Total number of site resolve requests, by result",
		}, []string{"result"}),
		ResolveFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctrine_resolver_failures_total",
			Help: "Total number of resolve failures recorded, by failure class",
		}, []string{"class"}),
	}
}

func (m *Metrics) ObserveResolve(result string) {
	m.ResolveRequestsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveFailure(class string) {
	m.ResolveFailuresTotal.WithLabelValues(class).Inc()
}
