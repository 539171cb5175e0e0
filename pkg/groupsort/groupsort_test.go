package groupsort

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratt-ru/casa-arrow/pkg/colerrors"
)

func buildInt32(mem memory.Allocator, values []int32) *array.Int32 {
	b := array.NewInt32Builder(mem)
	defer b.Release()
	b.AppendValues(values, nil)
	return b.NewInt32Array()
}

func buildFloat64(mem memory.Allocator, values []float64) *array.Float64 {
	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.AppendValues(values, nil)
	return b.NewFloat64Array()
}

func buildInt64(mem memory.Allocator, values []int64) *array.Int64 {
	b := array.NewInt64Builder(mem)
	defer b.Release()
	b.AppendValues(values, nil)
	return b.NewInt64Array()
}

func mustMake(t *testing.T, mem memory.Allocator, groups [][]int32, timeVals []float64, ant1, ant2 []int32, rows []int64) *GroupSortData {
	t.Helper()
	groupCols := make([]*array.Int32, len(groups))
	for i, g := range groups {
		groupCols[i] = buildInt32(mem, g)
	}
	d, err := Make(groupCols, buildFloat64(mem, timeVals), buildInt32(mem, ant1), buildInt32(mem, ant2), buildInt64(mem, rows))
	require.NoError(t, err)
	return d
}

func extractRows(d *GroupSortData) []int64 {
	out := make([]int64, d.Len())
	for i := range out {
		out[i] = d.Row(i)
	}
	return out
}

// TestSortStableLexicographic sorts on a group key with ties in time,
// checking that the sort is lexicographic across group then time and
// that row identifiers land where that ordering puts them.
func TestSortStableLexicographic(t *testing.T) {
	mem := memory.NewGoAllocator()
	d := mustMake(t, mem,
		[][]int32{{1, 0, 1, 0}},
		[]float64{2, 1, 1, 2},
		[]int32{0, 0, 0, 0},
		[]int32{0, 0, 0, 0},
		[]int64{10, 11, 12, 13},
	)

	sorted := d.Sort(mem)

	assert.Equal(t, []int32{0, 0, 1, 1}, arrowInt32Values(sorted.groups[0]))
	assert.Equal(t, []float64{1, 2, 1, 2}, arrowFloat64Values(sorted.time))
	assert.Equal(t, []int64{11, 13, 12, 10}, extractRows(sorted))
}

func TestSortIsStableOnTies(t *testing.T) {
	mem := memory.NewGoAllocator()
	d := mustMake(t, mem,
		[][]int32{{0, 0, 0}},
		[]float64{1, 1, 1},
		[]int32{0, 0, 0},
		[]int32{0, 0, 0},
		[]int64{100, 200, 300},
	)

	sorted := d.Sort(mem)
	assert.Equal(t, []int64{100, 200, 300}, extractRows(sorted))
}

func TestSortOrdersByEveryKeyInTurn(t *testing.T) {
	mem := memory.NewGoAllocator()
	d := mustMake(t, mem,
		[][]int32{{0, 0}},
		[]float64{5, 5},
		[]int32{2, 1},
		[]int32{0, 0},
		[]int64{1, 2},
	)

	sorted := d.Sort(mem)
	assert.Equal(t, []int64{2, 1}, extractRows(sorted))
}

func TestMakeRejectsMismatchedLength(t *testing.T) {
	mem := memory.NewGoAllocator()
	_, err := Make(
		[]*array.Int32{buildInt32(mem, []int32{0, 1})},
		buildFloat64(mem, []float64{1, 2, 3}),
		buildInt32(mem, []int32{0, 0, 0}),
		buildInt32(mem, []int32{0, 0, 0}),
		buildInt64(mem, []int64{1, 2, 3}),
	)
	require.Error(t, err)
	assert.True(t, colerrors.IsType(err, colerrors.TypeInvalid))
}

func TestMakeRejectsNulls(t *testing.T) {
	mem := memory.NewGoAllocator()
	b := array.NewFloat64Builder(mem)
	b.AppendValues([]float64{1, 0}, []bool{true, false})
	timeCol := b.NewFloat64Array()
	b.Release()

	_, err := Make(nil, timeCol, buildInt32(mem, []int32{0, 0}), buildInt32(mem, []int32{0, 0}), buildInt64(mem, []int64{1, 2}))
	require.Error(t, err)
	assert.True(t, colerrors.IsType(err, colerrors.TypeInvalid))
}

// TestMergeInterleavesSortedShards merges two pre-sorted shards and
// checks the interleaving is lexicographically ordered end to end.
func TestMergeInterleavesSortedShards(t *testing.T) {
	mem := memory.NewGoAllocator()
	shardA := mustMake(t, mem,
		[][]int32{{0, 0, 1}},
		[]float64{1, 3, 2},
		[]int32{0, 0, 0},
		[]int32{0, 0, 0},
		[]int64{100, 101, 102},
	)
	shardB := mustMake(t, mem,
		[][]int32{{0, 1, 1}},
		[]float64{2, 1, 5},
		[]int32{0, 0, 0},
		[]int32{0, 0, 0},
		[]int64{200, 201, 202},
	)

	merged, err := Merge(mem, []*GroupSortData{shardA, shardB})
	require.NoError(t, err)

	require.Equal(t, shardA.Len()+shardB.Len(), merged.Len())
	for i := 1; i < merged.Len(); i++ {
		assert.LessOrEqual(t, compareRows(merged, i-1, merged, i), 0)
	}

	seen := make(map[int64]bool)
	for _, r := range extractRows(merged) {
		seen[r] = true
	}
	for _, r := range append(extractRows(shardA), extractRows(shardB)...) {
		assert.True(t, seen[r], "row %d missing from merge output", r)
	}
}

func TestMergeEmptyInput(t *testing.T) {
	mem := memory.NewGoAllocator()
	merged, err := Merge(mem, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, merged.Len())
}

func TestMergeRejectsMismatchedGroupCount(t *testing.T) {
	mem := memory.NewGoAllocator()
	shardA := mustMake(t, mem, [][]int32{{0}}, []float64{1}, []int32{0}, []int32{0}, []int64{1})
	shardB := mustMake(t, mem, [][]int32{{0}, {0}}, []float64{1}, []int32{0}, []int32{0}, []int64{2})

	_, err := Merge(mem, []*GroupSortData{shardA, shardB})
	require.Error(t, err)
	assert.True(t, colerrors.IsType(err, colerrors.TypeInvalid))
}

func arrowInt32Values(a *array.Int32) []int32 {
	out := make([]int32, a.Len())
	for i := range out {
		out[i] = a.Value(i)
	}
	return out
}

func arrowFloat64Values(a *array.Float64) []float64 {
	out := make([]float64, a.Len())
	for i := range out {
		out[i] = a.Value(i)
	}
	return out
}
