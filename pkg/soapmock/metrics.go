package soapmock

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated by a Server.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the server collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "mock",
			Name:      "requests_total",
			Help:      "SOAP requests served by the mock backend.",
		}, []string{"group", "operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "mock",
			Name:      "request_duration_seconds",
			Help:      "Time spent answering SOAP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"group"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(group, operation string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(group, operation, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(group).Observe(elapsed.Seconds())
}
