package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	QueryDuration  *prometheus.HistogramVec
	QueryErrors    *prometheus.CounterVec
	SharedInsights prometheus.Counter
	SuccessRate    prometheus.Gauge
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "civreg_analytics_query_duration_seconds",
			Help:    "Duration of analytics reads by query",
			Buckets: prometheus.DefBuckets,
		}, []string{"query"}),
		QueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civreg_analytics_query_errors_total",
			Help: "Failed analytics reads by query",
		}, []string{"query"}),
		SharedInsights: factory.NewCounter(prometheus.CounterOpts{
			Name: "civreg_analytics_insights_shared_total",
			Help: "Insights calls answered by a computation already in flight",
		}),
		SuccessRate: factory.NewGauge(prometheus.GaugeOpts{
			Name: "civreg_analytics_auth_success_rate",
			Help: "Authentication success rate from the last computed insights, in percent",
		}),
	}
}

func (m *Metrics) ObserveQuery(query string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.QueryDuration.WithLabelValues(query).Observe(elapsed.Seconds())
	if err != nil {
		m.QueryErrors.WithLabelValues(query).Inc()
	}
}

func (m *Metrics) IncrementShared() {
	if m == nil {
		return
	}
	m.SharedInsights.Inc()
}

func (m *Metrics) SetSuccessRate(rate float64) {
	if m == nil {
		return
	}
	m.SuccessRate.Set(rate)
}
