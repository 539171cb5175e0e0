package groupsort

import (
	"sort"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ratt-ru/casa-arrow/pkg/pool"
)

// permIndexPool recycles the int64 permutation-index scratch Sort
// builds and discards on every call. It is the only user of pkg/pool
// in this module: ColumnMap/ColumnRange in colmap are the planner's own
// persistent output, not disposable scratch, so they are not pooled.
var permIndexPool = pool.New(
	func() []int64 { return make([]int64, 0, 4096) },
	func(s []int64) {},
)

// Sort returns a new GroupSortData whose rows are the stable
// lexicographic permutation of d's rows: group keys in declared order,
// then time, ant1, ant2.
func (d *GroupSortData) Sort(mem memory.Allocator) *GroupSortData {
	n := d.Len()

	perm := permIndexPool.Get()
	if cap(perm) < n {
		perm = make([]int64, n)
	} else {
		perm = perm[:n]
	}
	for i := range perm {
		perm[i] = int64(i)
	}

	sort.SliceStable(perm, func(i, j int) bool {
		return d.less(int(perm[i]), int(perm[j]))
	})

	out := d.gather(mem, perm)
	permIndexPool.Put(perm)
	return out
}

// gather builds a new GroupSortData by reading every column at each
// index in perm, in order.
func (d *GroupSortData) gather(mem memory.Allocator, perm []int64) *GroupSortData {
	n := len(perm)

	groupBuilders := make([]*array.Int32Builder, len(d.groups))
	for g := range d.groups {
		groupBuilders[g] = array.NewInt32Builder(mem)
		groupBuilders[g].Reserve(n)
	}
	timeB := array.NewFloat64Builder(mem)
	timeB.Reserve(n)
	ant1B := array.NewInt32Builder(mem)
	ant1B.Reserve(n)
	ant2B := array.NewInt32Builder(mem)
	ant2B.Reserve(n)
	rowsB := array.NewInt64Builder(mem)
	rowsB.Reserve(n)

	for _, p := range perm {
		i := int(p)
		for g, col := range d.groups {
			groupBuilders[g].Append(col.Value(i))
		}
		timeB.Append(d.time.Value(i))
		ant1B.Append(d.ant1.Value(i))
		ant2B.Append(d.ant2.Value(i))
		rowsB.Append(d.rows.Value(i))
	}

	groups := make([]*array.Int32, len(groupBuilders))
	for g, b := range groupBuilders {
		groups[g] = b.NewInt32Array()
		b.Release()
	}

	out := &GroupSortData{
		groups: groups,
		time:   timeB.NewFloat64Array(),
		ant1:   ant1B.NewInt32Array(),
		ant2:   ant2B.NewInt32Array(),
		rows:   rowsB.NewInt64Array(),
	}
	timeB.Release()
	ant1B.Release()
	ant2B.Release()
	rowsB.Release()
	return out
}
