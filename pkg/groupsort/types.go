package groupsort

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/ratt-ru/casa-arrow/pkg/colerrors"
)

// GroupSortData holds one shard's group-key columns plus the auxiliary
// time/ant1/ant2/rows columns every shard carries, all of equal length.
// It is immutable after Make; Sort and Merge return new instances.
type GroupSortData struct {
	groups []*array.Int32
	time   *array.Float64
	ant1   *array.Int32
	ant2   *array.Int32
	rows   *array.Int64
}

// Make validates and wraps a shard's columns: every column must be
// non-nil (groups itself may be empty or nil, meaning no group keys),
// every column (groups included) must share one length, and none may
// contain nulls.
func Make(groups []*array.Int32, timeCol *array.Float64, ant1, ant2 *array.Int32, rows *array.Int64) (*GroupSortData, error) {
	if timeCol == nil || ant1 == nil || ant2 == nil || rows == nil {
		return nil, colerrors.New(colerrors.TypeInvalid,
			"groupsort: time, ant1, ant2 and rows columns are required")
	}
	for i, g := range groups {
		if g == nil {
			return nil, colerrors.Newf(colerrors.TypeInvalid, "groupsort: group column %d is nil", i)
		}
	}

	n := timeCol.Len()
	if err := checkLength("time", timeCol.Len(), n); err != nil {
		return nil, err
	}
	if err := checkLength("ant1", ant1.Len(), n); err != nil {
		return nil, err
	}
	if err := checkLength("ant2", ant2.Len(), n); err != nil {
		return nil, err
	}
	if err := checkLength("rows", rows.Len(), n); err != nil {
		return nil, err
	}
	for i, g := range groups {
		if err := checkLength(fmt.Sprintf("group[%d]", i), g.Len(), n); err != nil {
			return nil, err
		}
	}

	if err := checkNoNulls("time", timeCol.NullN()); err != nil {
		return nil, err
	}
	if err := checkNoNulls("ant1", ant1.NullN()); err != nil {
		return nil, err
	}
	if err := checkNoNulls("ant2", ant2.NullN()); err != nil {
		return nil, err
	}
	if err := checkNoNulls("rows", rows.NullN()); err != nil {
		return nil, err
	}
	for i, g := range groups {
		if err := checkNoNulls(fmt.Sprintf("group[%d]", i), g.NullN()); err != nil {
			return nil, err
		}
	}

	return &GroupSortData{groups: groups, time: timeCol, ant1: ant1, ant2: ant2, rows: rows}, nil
}

func checkLength(name string, got, want int) error {
	if got != want {
		return colerrors.Newf(colerrors.TypeInvalid,
			"groupsort: column %s has length %d, want %d", name, got, want)
	}
	return nil
}

func checkNoNulls(name string, nullCount int) error {
	if nullCount > 0 {
		return colerrors.Newf(colerrors.TypeInvalid, "groupsort: column %s contains %d nulls", name, nullCount)
	}
	return nil
}

// NGroups returns the number of declared group-key columns.
func (d *GroupSortData) NGroups() int { return len(d.groups) }

// Len returns the number of rows in this shard.
func (d *GroupSortData) Len() int {
	if d.time == nil {
		return 0
	}
	return d.time.Len()
}

// Group returns the value of group column g at row.
func (d *GroupSortData) Group(g, row int) int32 { return d.groups[g].Value(row) }

// Time returns the time value at row.
func (d *GroupSortData) Time(row int) float64 { return d.time.Value(row) }

// Ant1 returns the ant1 value at row.
func (d *GroupSortData) Ant1(row int) int32 { return d.ant1.Value(row) }

// Ant2 returns the ant2 value at row.
func (d *GroupSortData) Ant2(row int) int32 { return d.ant2.Value(row) }

// Row returns the original row index at row.
func (d *GroupSortData) Row(row int) int64 { return d.rows.Value(row) }
