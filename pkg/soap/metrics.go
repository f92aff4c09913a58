package soap

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Call outcomes used as the "outcome" metric label.
const (
	OutcomeOK             = "ok"
	OutcomeHTTPError      = "http_error"
	OutcomeFault          = "fault"
	OutcomeTransportError = "transport_error"
	OutcomeCancelled      = "cancelled"
)

// Metrics holds the Prometheus collectors updated by an Invoker.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the invoker collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "soap",
			Name:      "calls_total",
			Help:      "SOAP calls issued, by endpoint group, operation and outcome.",
		}, []string{"group", "operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "soap",
			Name:      "call_duration_seconds",
			Help:      "Round-trip time of SOAP calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"group", "operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.calls, m.duration)
	}
	return m
}

func (m *Metrics) observe(group EndpointGroup, operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(string(group), operation, outcome).Inc()
	m.duration.WithLabelValues(string(group), operation).Observe(elapsed.Seconds())
}
