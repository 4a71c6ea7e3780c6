// Package metrics exposes Prometheus collectors for the ingestion pipeline.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	entriesEnqueuedTotal  prometheus.Counter
	entriesWrittenTotal   prometheus.Counter
	queueDepth            prometheus.Gauge
	insertDurationSeconds prometheus.Histogram
	fetchesTotal          *prometheus.CounterVec
	runsTotal             *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		entriesEnqueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "catalog_entries_enqueued_total",
			Help: "Total number of entries accepted onto the work queue.",
		})

		entriesWrittenTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "catalog_entries_written_total",
			Help: "Total number of entries persisted by the writer.",
		})

		queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_queue_depth",
			Help: "Entries accepted onto the work queue but not yet acknowledged.",
		})

		insertDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_insert_duration_seconds",
			Help:    "Histogram of single-entry persistence latencies.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		})

		fetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_fetches_total",
				Help: "Total number of source fetches, labeled by host and outcome.",
			},
			[]string{"host", "outcome"},
		)

		runsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_runs_total",
				Help: "Total number of ingestion runs, labeled by outcome.",
			},
			[]string{"outcome"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveEnqueued increments the enqueued-entries counter.
func ObserveEnqueued() {
	entriesEnqueuedTotal.Inc()
}

// ObserveWritten records one persisted entry and its insert latency.
func ObserveWritten(duration time.Duration) {
	entriesWrittenTotal.Inc()
	insertDurationSeconds.Observe(duration.Seconds())
}

// SetQueueDepth updates the queue depth gauge.
func SetQueueDepth(depth int) {
	queueDepth.Set(float64(depth))
}

// ObserveFetch increments the fetch counter for the given host and outcome.
func ObserveFetch(host, outcome string) {
	fetchesTotal.WithLabelValues(host, outcome).Inc()
}

// ObserveRun increments the run counter for the given outcome.
func ObserveRun(outcome string) {
	runsTotal.WithLabelValues(outcome).Inc()
}
