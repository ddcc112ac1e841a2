package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every metric of the service.
const Namespace = "aiportalx"

// Catalogue Prometheus metrics.
var (
	CatalogQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "catalog_queries_total",
			Help:      "Store queries by predicate kind",
		},
		[]string{"kind"}, // "facets" / "identity" / "text"
	)

	FacetCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "facet_cache_total",
			Help:      "Filter listing cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CategorizerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "categorizer_requests_total",
			Help:      "Task categorizer calls",
		},
		[]string{"status"}, // "ok" / "error"
	)

	CategorizerRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "categorizer_request_duration_seconds",
			Help:      "Task categorizer call duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SeededModelsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "seeded_models_total",
			Help:      "Model documents written by the seeder",
		},
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers the catalogue metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(CatalogQueriesTotal)
	prometheus.MustRegister(FacetCacheTotal)
	prometheus.MustRegister(CategorizerRequestsTotal)
	prometheus.MustRegister(CategorizerRequestDuration)
	prometheus.MustRegister(SeededModelsTotal)
	catalogMetricsRegistered = true
}
