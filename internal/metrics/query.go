package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query parsing Prometheus metrics.
var (
	QueryParseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ptlsearch",
			Name:      "query_parse_total",
			Help:      "Total number of parsed search queries",
		},
		[]string{"environment", "scope"}, // scope: directives / checked / none
	)

	QueryDirectivesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ptlsearch",
			Name:      "query_directives_total",
			Help:      "Inline field directives seen in search text",
		},
		[]string{"environment", "valid"},
	)

	PopularRecordErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ptlsearch",
			Name:      "popular_record_errors_total",
			Help:      "Failed attempts to record a popular search",
		},
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers Prometheus query metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueryParseTotal)
	prometheus.MustRegister(QueryDirectivesTotal)
	prometheus.MustRegister(PopularRecordErrorsTotal)
	queryMetricsRegistered = true
}
