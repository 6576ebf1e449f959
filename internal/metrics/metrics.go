package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess           = "success"
	OutcomeSourceUnavailable = "source_unavailable"
	OutcomePersistenceError  = "persistence_error"
	OutcomeInternalError     = "internal_error"
)

var (
	RefreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "countrypulse_refresh_runs_total",
		Help: "Refresh runs by terminal outcome.",
	}, []string{"outcome"})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "countrypulse_refresh_duration_seconds",
		Help:    "End-to-end duration of refresh runs.",
		Buckets: prometheus.DefBuckets,
	})

	SnapshotPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "countrypulse_snapshot_publish_failures_total",
		Help: "Snapshot publications that failed after a committed refresh.",
	})
)
