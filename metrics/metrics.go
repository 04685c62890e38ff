package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	ConfigDataFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entsearch_config_data_fetches_total",
			Help: "Total number of config data fetch attempts",
		},
		[]string{"outcome"},
	)

	ConfigDataFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "entsearch_config_data_fetch_duration_seconds",
			Help:    "Time taken to fetch config data",
			Buckets: prometheus.DefBuckets,
		},
	)

	ConfigDataInitialized = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "entsearch_config_data_initialized",
			Help: "1 once config data has been fetched successfully",
		},
	)

	ApplicationMounts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entsearch_application_mounts_total",
			Help: "Total number of application mounts",
		},
		[]string{"app"},
	)

	ActiveMounts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "entsearch_active_mounts",
			Help: "Number of mounted applications that have not been torn down",
		},
	)

	CatalogueRegistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entsearch_catalogue_registrations_total",
			Help: "Total number of feature catalogue registrations",
		},
		[]string{"kind"},
	)

	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "entsearch_api_rate_limited_requests_total",
			Help: "Total number of API requests rejected by the rate limiter",
		},
	)
)
