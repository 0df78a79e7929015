package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	DecisionsTotal      *prometheus.CounterVec
	AuditAppendFailures prometheus.Counter
	AuditAppendRetries  prometheus.Counter
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DecisionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "civreg_authentication_decisions_total",
			Help: "Authentication calls by result (success, identifier_not_found, biometric_mismatch, error)",
		}, []string{"result"}),
		AuditAppendFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "civreg_authentication_audit_append_failures_total",
			Help: "Decisions withheld because the audit record could not be written",
		}),
		AuditAppendRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "civreg_authentication_audit_append_retries_total",
			Help: "Audit append attempts that failed and were retried",
		}),
	}
}

func (m *Metrics) IncrementDecision(result string) {
	if m == nil {
		return
	}
	m.DecisionsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementAuditAppendFailure() {
	if m == nil {
		return
	}
	m.AuditAppendFailures.Inc()
}

func (m *Metrics) IncrementAuditAppendRetry() {
	if m == nil {
		return
	}
	m.AuditAppendRetries.Inc()
}
