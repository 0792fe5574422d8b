// Package observability provides mutation metrics for governed
// entities. It implements entity.Observer on top of Prometheus
// counters so an owning service can track how often fields change and
// how often the guard rails fire.
package observability

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/espalier/pkg/domain"
)

// Metrics counts mutation outcomes per field. Rejections are broken
// down by cause so immutability violations and invariant violations are
// distinguishable on a dashboard.
type Metrics struct {
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
// Registration panics on duplicate metric names, consistent with
// prometheus.MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "mutations_applied_total",
			Help:      "Successful governed field writes.",
		}, []string{"field"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "mutations_rejected_total",
			Help:      "Rejected governed field writes, by cause.",
		}, []string{"field", "cause"}),
	}
	reg.MustRegister(m.applied, m.rejected)
	return m
}

// MutationApplied implements entity.Observer.
func (m *Metrics) MutationApplied(field string) {
	m.applied.WithLabelValues(field).Inc()
}

// MutationRejected implements entity.Observer.
func (m *Metrics) MutationRejected(field string, err error) {
	m.rejected.WithLabelValues(field, cause(err)).Inc()
}

// AppliedCounter exposes the applied counter for tests and dashboards.
func (m *Metrics) AppliedCounter() *prometheus.CounterVec { return m.applied }

// RejectedCounter exposes the rejected counter for tests and dashboards.
func (m *Metrics) RejectedCounter() *prometheus.CounterVec { return m.rejected }

func cause(err error) string {
	var immutable *domain.ImmutableFieldError
	if errors.As(err, &immutable) {
		return "immutable"
	}
	var invariant *domain.InvariantError
	if errors.As(err, &invariant) {
		return "invariant"
	}
	return "other"
}
