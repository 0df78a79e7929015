package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EnrollmentsTotal *prometheus.CounterVec
	ConflictsTotal   prometheus.Counter
	MutationsTotal   *prometheus.CounterVec
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EnrollmentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civreg_registry_enrollments_total",
			Help: "Enrollment attempts by outcome status",
		}, []string{"status"}),
		ConflictsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "civreg_registry_dedup_conflicts_total",
			Help: "Enrollments refused because the biometric token was already enrolled",
		}),
		MutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civreg_registry_mutations_total",
			Help: "Update and delete calls by operation and whether a row matched",
		}, []string{"operation", "matched"}),
	}
}

func (m *Metrics) IncrementEnrollment(status string) {
	if m == nil {
		return
	}
	m.EnrollmentsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) IncrementConflict() {
	if m == nil {
		return
	}
	m.ConflictsTotal.Inc()
}

func (m *Metrics) IncrementMutation(operation string, matched bool) {
	if m == nil {
		return
	}
	label := "false"
	if matched {
		label = "true"
	}
	m.MutationsTotal.WithLabelValues(operation, label).Inc()
}
