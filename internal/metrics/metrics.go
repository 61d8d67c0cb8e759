// Package metrics holds the Prometheus collectors updated by the lazy array
// cache and the graph scheduler. Collectors live on a private registry so
// that embedding applications decide whether and how to expose them.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const namespace = "lazyflow"

// Cache request outcomes.
const (
	CacheHit     = "hit"
	CachePartial = "partial"
	CacheMiss    = "miss"
)

// Registry holds every collector in this package.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// CacheRequests counts cache lookups by outcome.
	CacheRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Range requests served by interval caches, by outcome.",
	}, []string{"result"})

	// CacheFetchedFrames counts frames the caches had to pull from their sources.
	CacheFetchedFrames = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "fetched_frames_total",
		Help:      "Frames requested from cache sources.",
	})

	// NodeExecutions counts successful node calculations by node identifier.
	NodeExecutions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "graph",
		Name:      "node_executions_total",
		Help:      "Node calculations that completed successfully.",
	}, []string{"identifier"})

	// NodeFailures counts failed executions by error kind.
	NodeFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "graph",
		Name:      "failures_total",
		Help:      "Graph executions aborted by an error, by error kind.",
	}, []string{"kind"})

	// ExecuteSeconds observes the wall time of whole graph executions.
	ExecuteSeconds = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "graph",
		Name:      "execute_seconds",
		Help:      "Duration of graph executions.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})
)

// WriteText writes all collectors in the Prometheus text exposition format.
func WriteText(w io.Writer) error {
	families, err := Registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
