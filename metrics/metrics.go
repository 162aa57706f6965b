// Package metrics exposes Prometheus collectors for the leaderboard service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service collectors behind a private registry.
type Metrics struct {
	registry *prometheus.Registry

	ViewersConnected prometheus.Gauge
	EventsBroadcast  *prometheus.CounterVec
	ResultsSubmitted prometheus.Counter
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ViewersConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "leaderboard_viewers_connected",
			Help: "Number of currently connected viewer websockets.",
		}),
		EventsBroadcast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leaderboard_events_broadcast_total",
			Help: "Events published to viewers, by event name.",
		}, []string{"event"}),
		ResultsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "leaderboard_results_submitted_total",
			Help: "Round results accepted and persisted.",
		}),
	}

	m.registry.MustRegister(m.ViewersConnected, m.EventsBroadcast, m.ResultsSubmitted)
	return m
}

// Handler serves the /metrics scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
