package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the aggregation
// service and its upstream clients.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec   // labels: source, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: source
	ScrapeRetries    prometheus.Counter

	RecordsNormalized   prometheus.Counter
	UnresolvedCountries prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "covid_etl",
			Name:      "upstream_requests_total",
			Help:      "Upstream fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "covid_etl",
			Name:      "upstream_duration_seconds",
			Help:      "Upstream fetch duration in seconds, including parsing.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		ScrapeRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_etl",
			Name:      "scrape_retries_total",
			Help:      "Dashboard scrape attempts that needed the single retry.",
		}),
		RecordsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_etl",
			Name:      "records_normalized_total",
			Help:      "Normalized case records produced.",
		}),
		UnresolvedCountries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "covid_etl",
			Name:      "unresolved_countries_total",
			Help:      "Rows whose country name could not be resolved to an ISO code.",
		}),
	}

	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.ScrapeRetries,
		m.RecordsNormalized,
		m.UnresolvedCountries,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		UpstreamRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "covid_etl", Name: "upstream_requests_total"}, []string{"source", "outcome"}),
		UpstreamDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "covid_etl", Name: "upstream_duration_seconds"}, []string{"source"}),
		ScrapeRetries:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "covid_etl", Name: "scrape_retries_total"}),
		RecordsNormalized:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "covid_etl", Name: "records_normalized_total"}),
		UnresolvedCountries: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "covid_etl", Name: "unresolved_countries_total"}),
	}
}
