package lattice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "hypercube"
	subsystem        = "lattice"
)

var (
	// Construction metrics
	CreateCubeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "create_cube_total",
			Help:      "Total number of cube constructions",
		},
		[]string{"status"}, // success, error
	)

	// Traversal metrics
	PropagateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "propagate_total",
			Help:      "Total number of propagation runs",
		},
		[]string{"status"},
	)

	PropagateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "propagate_duration_seconds",
			Help:      "Time taken for a propagation run",
			Buckets:   prometheus.DefBuckets,
		},
	)

	PropagateNodesVisited = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "propagate_nodes_visited",
			Help:      "Number of nodes visited per propagation run",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 20), // 2 to 2^20
		},
	)

	// Lookup/Query metrics
	NeighborsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "neighbors_total",
			Help:      "Total number of neighbor lookups",
		},
		[]string{"status"},
	)

	NodeInfoTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "node_info_total",
			Help:      "Total number of node info snapshots",
		},
		[]string{"status"},
	)

	// State metrics
	ActivationDensityGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "activation_density",
			Help:      "Activated fraction of the node set",
		},
	)

	ResetTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "reset_total",
			Help:      "Total number of activation state resets",
		},
	)

	RestoreTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "restore_total",
			Help:      "Total number of activation state restores",
		},
		[]string{"status"},
	)
)
