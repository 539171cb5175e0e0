// Package integration exercises the column mapping planner end to end
// against a casastore fixture, scattering the planned ranges into real
// Arrow arrays.
package integration

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratt-ru/casa-arrow/pkg/casastore"
	"github.com/ratt-ru/casa-arrow/pkg/colmap"
)

// scatterSequential drives every RangeIterator/MapIterator position of
// mapping and scatters an incrementing counter into an Arrow array
// sized to mapping.NElements(), addressed by GlobalOffset. If the
// planner produces a dense, non-overlapping cover of [0, NElements()),
// the resulting array holds every counter value exactly once.
func scatterSequential(t *testing.T, mapping *colmap.ColumnMapping) *array.Int32 {
	t.Helper()

	total := int(mapping.NElements())
	out := make([]int32, total)
	written := make([]bool, total)

	counter := int32(0)
	for r := mapping.RangeBegin(); !r.Done(); r.Next() {
		for m := r.MapBegin(); !m.Done(); m.Next() {
			off := int(m.GlobalOffset())
			require.False(t, written[off], "offset %d written more than once", off)
			written[off] = true
			out[off] = counter
			counter++
		}
	}
	for i, w := range written {
		require.True(t, w, "offset %d never written", i)
	}

	mem := memory.NewGoAllocator()
	b := array.NewInt32Builder(mem)
	b.AppendValues(out, nil)
	arr := b.NewInt32Array()
	b.Release()
	return arr
}

func TestColumnMappingScattersFixedColumnIntoArrowArray(t *testing.T) {
	col := casastore.NewFixedColumn("DATA", 4, []int{2, 3})

	mapping, err := colmap.MakeOrdered(col, nil, colmap.OrderC)
	require.NoError(t, err)

	assert.True(t, mapping.IsSimple())
	assert.EqualValues(t, 24, mapping.NElements())

	arr := scatterSequential(t, mapping)
	assert.Equal(t, 24, arr.Len())
	// scatterSequential already proved GlobalOffset densely and
	// uniquely covers [0, 24); the final counter value is 23.
	assert.Equal(t, int32(23), arr.Value(23))
}

func TestColumnMappingRowSelectionNarrowsOutput(t *testing.T) {
	col := casastore.NewFixedColumn("DATA", 5, []int{2})

	sel := colmap.Selection{colmap.RowIDs{0, 2, 4}}
	mapping, err := colmap.MakeOrdered(col, sel, colmap.OrderC)
	require.NoError(t, err)

	assert.EqualValues(t, 6, mapping.NElements())
	assert.EqualValues(t, 3, mapping.NRanges())

	arr := scatterSequential(t, mapping)
	assert.Equal(t, 6, arr.Len())
}

func TestColumnMappingVariableColumnEndToEnd(t *testing.T) {
	shapes := map[casastore.RowID][]int{
		0: {2, 3},
		1: {5, 1},
		2: {1, 1},
	}
	col := casastore.NewVariableColumn("WEIGHT", 3, 2, shapes)

	mapping, err := colmap.MakeOrdered(col, nil, colmap.OrderC)
	require.NoError(t, err)

	assert.EqualValues(t, 6+5+1, mapping.NElements())
	assert.False(t, mapping.IsSimple())

	arr := scatterSequential(t, mapping)
	assert.Equal(t, 12, arr.Len())
}

func TestColumnMappingVariableColumnUnsortedRowSelection(t *testing.T) {
	shapes := map[casastore.RowID][]int{0: {2, 3}, 1: {5, 1}}
	col := casastore.NewVariableColumn("DATA", 2, 2, shapes)

	sel := colmap.Selection{colmap.RowIDs{1, 0}}
	mapping, err := colmap.MakeOrdered(col, sel, colmap.OrderC)
	require.NoError(t, err)

	assert.EqualValues(t, 6+5, mapping.NElements())
	arr := scatterSequential(t, mapping)
	assert.Equal(t, 11, arr.Len())
}

func TestColumnMappingRejectsUndefinedRow(t *testing.T) {
	shapes := map[casastore.RowID][]int{0: {2}}
	col := casastore.NewVariableColumn("WEIGHT", 2, 1, shapes)

	_, err := colmap.MakeOrdered(col, nil, colmap.OrderC)
	require.Error(t, err)
}
