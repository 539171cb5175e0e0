// Package observability wires prometheus metrics and OpenTelemetry
// tracing for the code that sits around the planner and sort engine,
// called from cmd/casamap. The planner packages themselves
// (pkg/colmap, pkg/groupsort) stay dependency-light and never import
// this package.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ColmapRangesTotal counts ranges produced by ColumnMapping.Make,
	// per column.
	ColmapRangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casaarrow",
			Subsystem: "colmap",
			Name:      "ranges_total",
			Help:      "Total number of ranges produced by ColumnMapping.Make",
		},
		[]string{"column"},
	)

	// ColmapElementsTotal counts elements planned across all ranges of
	// a ColumnMapping, per column.
	ColmapElementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "casaarrow",
			Subsystem: "colmap",
			Name:      "elements_total",
			Help:      "Total number of elements planned by ColumnMapping.Make",
		},
		[]string{"column"},
	)

	// ColmapSimple reports whether the most recent mapping for a column
	// collapsed to a single contiguous range (1) or not (0).
	ColmapSimple = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "casaarrow",
			Subsystem: "colmap",
			Name:      "simple",
			Help:      "1 if the most recent ColumnMapping for this column is a single contiguous range, else 0",
		},
		[]string{"column"},
	)

	// GroupsortDuration times Sort and Merge calls.
	GroupsortDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "casaarrow",
			Subsystem: "groupsort",
			Name:      "duration_seconds",
			Help:      "Duration of GroupSortData Sort/Merge operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// ObserveMapping records the ranges/elements/simple metrics for one
// ColumnMapping.Make call against the named column.
func ObserveMapping(column string, ranges, elements int, simple bool) {
	ColmapRangesTotal.WithLabelValues(column).Add(float64(ranges))
	ColmapElementsTotal.WithLabelValues(column).Add(float64(elements))
	v := 0.0
	if simple {
		v = 1.0
	}
	ColmapSimple.WithLabelValues(column).Set(v)
}
