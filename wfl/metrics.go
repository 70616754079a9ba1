package wfl

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus collectors for action execution.
type Metrics struct {
	actionsExecuted   *prometheus.CounterVec
	safeCallFallbacks *prometheus.CounterVec
	bindingsRejected  prometheus.Counter
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		actionsExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wfl_actions_executed_total",
				Help: "Total number of formula actions executed",
			},
			[]string{"action"},
		),
		safeCallFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wfl_safe_call_fallbacks_total",
				Help: "Total number of safe_call primaries that failed and fell back",
			},
			[]string{"status"},
		),
		bindingsRejected: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "wfl_set_var_rejected_total",
				Help: "Total number of set_var bindings rejected by the context",
			},
		),
	}
}

func (m *Metrics) actionExecuted(t CallableType) {
	m.actionsExecuted.WithLabelValues(t.String()).Inc()
}

func (m *Metrics) safeCallFallback(status Status) {
	m.safeCallFallbacks.WithLabelValues(status.String()).Inc()
}

func (m *Metrics) bindingRejected() {
	m.bindingsRejected.Inc()
}
