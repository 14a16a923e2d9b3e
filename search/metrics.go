package search

import "github.com/prometheus/client_golang/prometheus"

var (
	searchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "noa",
		Subsystem: "search",
		Name:      "requests_total",
		Help:      "Total number of served search requests.",
	})

	// Distinguishes a missing searchable-text projection from a legitimate
	// zero-result query; both look the same to the caller.
	searchesFailedClosed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "noa",
		Subsystem: "search",
		Name:      "failed_closed_total",
		Help:      "Searches answered empty because the text index was missing.",
	})

	searchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "noa",
		Subsystem: "search",
		Name:      "duration_seconds",
		Help:      "Search pipeline duration in seconds.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})
)

func init() {
	prometheus.MustRegister(searchesTotal, searchesFailedClosed, searchDuration)
}
