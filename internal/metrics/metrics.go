package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors on a private registry so tests can
// create as many instances as they like.
type Metrics struct {
	Registry *prometheus.Registry

	RosterPlayers prometheus.Gauge
	Reloads       *prometheus.CounterVec
	Lookups       *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
}

// New creates and registers all collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		RosterPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tierboard",
			Name:      "roster_players",
			Help:      "Number of players in the current leaderboard snapshot.",
		}),
		Reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tierboard",
			Name:      "roster_reloads_total",
			Help:      "Roster reloads by result.",
		}, []string{"result"}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tierboard",
			Name:      "lookups_total",
			Help:      "Player lookups and searches by kind and result.",
		}, []string{"kind", "result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tierboard",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
	}

	reg.MustRegister(
		m.RosterPlayers,
		m.Reloads,
		m.Lookups,
		m.HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveReload records a reload outcome and the resulting roster size.
func (m *Metrics) ObserveReload(err error, players int) {
	if m == nil {
		return
	}
	if err != nil {
		m.Reloads.WithLabelValues("error").Inc()
		return
	}
	m.Reloads.WithLabelValues("ok").Inc()
	m.RosterPlayers.Set(float64(players))
}

// ObserveLookup records a name lookup ("find") or search ("search").
func (m *Metrics) ObserveLookup(kind string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.Lookups.WithLabelValues(kind, result).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
