package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SolveRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "periplus_solve_requests_total",
		Help: "Total number of solve requests",
	})
	SolveFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "periplus_solve_failures_total",
		Help: "Total number of failed solve requests",
	})
	SolveDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "periplus_solve_duration_ms",
		Help:    "Solve duration in milliseconds",
		Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 30000, 60000},
	})
	GenerationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "periplus_generations_total",
		Help: "Total generations evolved across all solves",
	})
	RoutingRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "periplus_routing_requests_total",
		Help: "Total routing provider requests",
	})
	RoutingFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "periplus_routing_fail_total",
		Help: "Total routing provider failures",
	})
	RoutingDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "periplus_routing_duration_ms",
		Help:    "Routing provider call duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	TableCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "periplus_table_cache_hits_total",
		Help: "Total cost table cache hits",
	})
	TableCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "periplus_table_cache_misses_total",
		Help: "Total cost table cache misses",
	})
)

func init() {
	prometheus.MustRegister(SolveRequestsTotal)
	prometheus.MustRegister(SolveFailuresTotal)
	prometheus.MustRegister(SolveDurationMs)
	prometheus.MustRegister(GenerationsTotal)
	prometheus.MustRegister(RoutingRequestsTotal)
	prometheus.MustRegister(RoutingFailTotal)
	prometheus.MustRegister(RoutingDurationMs)
	prometheus.MustRegister(TableCacheHitsTotal)
	prometheus.MustRegister(TableCacheMissesTotal)
}

// Handler exposes the registered collectors for scraping.
func Handler() http.Handler { return promhttp.Handler() }
