package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_query_requests_total",
			Help: "Total number of query executions by outcome",
		},
		[]string{"query", "outcome"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "explorer_query_duration_seconds",
			Help:    "Duration of query execution in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"query"},
	)

	StoreRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "explorer_store_records",
			Help: "Number of records in the loaded store",
		},
	)

	StoreLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explorer_store_loads_total",
			Help: "Store load attempts by result",
		},
		[]string{"result"},
	)
)

// ObserveQuery records one query execution.
func ObserveQuery(query, outcome string, started time.Time) {
	QueryRequests.WithLabelValues(query, outcome).Inc()
	QueryDuration.WithLabelValues(query).Observe(time.Since(started).Seconds())
}

// ObserveLoad records a store load attempt. records is ignored on failure.
func ObserveLoad(records int, err error) {
	if err != nil {
		StoreLoads.WithLabelValues("failure").Inc()
		return
	}
	StoreLoads.WithLabelValues("success").Inc()
	StoreRecords.Set(float64(records))
}
