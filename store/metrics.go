package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "hypercube"
	subsystem        = "store"
)

var (
	PutRunTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "put_run_total",
			Help:      "Total number of run record writes",
		},
		[]string{"status"}, // success, error
	)

	PutRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "put_run_duration_seconds",
			Help:      "Time taken to write a run record",
			Buckets:   prometheus.DefBuckets,
		},
	)

	GetRunTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "get_run_total",
			Help:      "Total number of run record reads",
		},
		[]string{"status"},
	)

	GetRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "get_run_duration_seconds",
			Help:      "Time taken to read a run record",
			Buckets:   prometheus.DefBuckets,
		},
	)

	PutSummaryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "put_summary_total",
			Help:      "Total number of summary record writes",
		},
		[]string{"status"},
	)

	GetSummaryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "get_summary_total",
			Help:      "Total number of summary record reads",
		},
		[]string{"status"},
	)
)
