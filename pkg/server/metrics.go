package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's Prometheus instruments.
type Metrics struct {
	eventsTotal      *prometheus.CounterVec
	eventDuration    *prometheus.HistogramVec
	patchesSent      prometheus.Counter
	activeSessions   prometheus.Gauge
	detachedSessions prometheus.Gauge
	resumesTotal     prometheus.Counter
}

// NewMetrics registers the server's instruments with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lattice",
			Name:      "events_total",
			Help:      "Total client events processed",
		}, []string{"route", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lattice",
			Name:      "event_duration_seconds",
			Help:      "Event processing duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lattice",
			Name:      "patches_sent_total",
			Help:      "Total mutation patches streamed to clients",
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "lattice",
			Name:      "active_sessions",
			Help:      "Sessions with a live WebSocket connection",
		}),

		detachedSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "lattice",
			Name:      "detached_sessions",
			Help:      "Persisted sessions awaiting resume",
		}),

		resumesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lattice",
			Name:      "resumes_total",
			Help:      "Total detached sessions successfully resumed",
		}),
	}
}
