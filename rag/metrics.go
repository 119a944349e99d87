package rag

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is internal Prometheus instrumentation for a single RAG's
// lifetime (spec.md §4.14): merge counts, queue depth, and per-merge
// latency. All methods are nil-safe so a RAG constructed without
// WithMetrics pays no instrumentation cost and never nil-panics.
//
// Each Metrics owns a private prometheus.Registry rather than registering
// into the global default registry, so multiple RAGs (e.g. one per
// worker in a batch CLI run) never collide on metric names.
type Metrics struct {
	registry *prometheus.Registry

	mergesTotal       prometheus.Counter
	mergesForbidden   prometheus.Counter
	inclusionsRemoved prometheus.Counter
	queueDepth        prometheus.Gauge
	mergeDuration     prometheus.Histogram
}

// NewMetrics constructs a Metrics instance with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return &Metrics{
		registry: reg,
		mergesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ragseg_merges_total",
			Help: "Total number of node merges performed.",
		}),
		mergesForbidden: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ragseg_merges_forbidden_total",
			Help: "Total number of merges refused by an exclusion constraint.",
		}),
		inclusionsRemoved: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ragseg_inclusions_removed_total",
			Help: "Total number of degree-1 inclusion nodes absorbed.",
		}),
		queueDepth: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "ragseg_queue_depth",
			Help: "Current number of entries, stale ones included, in the merge priority queue.",
		}),
		mergeDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "ragseg_merge_duration_seconds",
			Help:    "Wall-clock time spent inside a single Merge call.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Registry exposes the private registry so a caller can expose /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) observeMerge(d time.Duration) {
	if m == nil {
		return
	}
	m.mergesTotal.Inc()
	m.mergeDuration.Observe(d.Seconds())
}

func (m *Metrics) observeForbidden() {
	if m == nil {
		return
	}
	m.mergesForbidden.Inc()
}

func (m *Metrics) observeInclusionRemoved() {
	if m == nil {
		return
	}
	m.inclusionsRemoved.Inc()
}

func (m *Metrics) setQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}
