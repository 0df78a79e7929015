package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	DecisionsTotal *prometheus.CounterVec
	Degraded       prometheus.Gauge
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DecisionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civreg_ratelimit_decisions_total",
			Help: "Rate limit checks by scope and decision (allowed, limited, error)",
		}, []string{"scope", "decision"}),
		Degraded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "civreg_ratelimit_degraded",
			Help: "1 while the shared limiter is bypassed for the in-process fallback",
		}),
	}
}

func (m *Metrics) IncrementDecision(scope, decision string) {
	if m == nil {
		return
	}
	m.DecisionsTotal.WithLabelValues(scope, decision).Inc()
}

func (m *Metrics) SetDegraded(degraded bool) {
	if m == nil {
		return
	}
	if degraded {
		m.Degraded.Set(1)
		return
	}
	m.Degraded.Set(0)
}
