// Package casaarrow bridges CASA-style tabular storage columns into flat
// Apache Arrow columnar buffers.
//
// Two independent engines make up the module:
//
// 1. Column Mapping Planner (pkg/colmap): given a column's shape
// description and a multi-dimensional row/index selection, computes the
// disk-read and memory-write plan needed to scatter a column's cells
// into a contiguous Arrow array, without touching storage itself.
//
// 2. Group-Sort/Merge engine (pkg/groupsort): stable lexicographic sort
// and k-way merge of row-oriented Arrow arrays keyed on integer group
// columns plus time/ant1/ant2, carrying a rows column alongside.
//
// # Quick start
//
//	import (
//	    "github.com/ratt-ru/casa-arrow/pkg/colmap"
//	)
//
//	mapping, err := colmap.MakeOrdered(column, selection, colmap.OrderF)
//	if err != nil {
//	    // handle
//	}
//	for r := mapping.RangeBegin(); !r.Done(); r.Next() {
//	    // read r.GetRowSlicer() x r.GetSectionSlicer(), scatter via r.MapBegin()
//	}
//
// # Key packages
//
//	pkg/colmap        - column mapping planner
//	pkg/groupsort      - sort/merge engine over Arrow row data
//	pkg/casastore      - in-memory reference storage engine (test/demo only)
//	pkg/colerrors      - structured planner errors
//	pkg/logger         - structured logging (zap)
//	pkg/config         - CLI configuration
//	pkg/observability  - prometheus metrics and OpenTelemetry tracing
//	pkg/pool           - scratch-buffer reuse for GroupSortData.Sort
//	cmd/casamap        - demonstration CLI (plan/sort/merge/version)
//
// # Non-goals
//
// This module does not perform CASA table I/O, does not decode element
// types, and does not implement sparse in-row selections. See
// SPEC_FULL.md for the full requirements this module implements.
package casaarrow
