package colmap

import (
	"sort"

	"github.com/ratt-ru/casa-arrow/pkg/colerrors"
)

// ColumnMapping is the planner's output: a per-dimension disk-to-memory
// mapping and range set for one column under one selection. It is
// immutable after Make and safe to share across goroutines; each
// RangeIterator/MapIterator derived from it carries its own cursor.
type ColumnMapping struct {
	column        Column
	maps          ColumnMaps
	ranges        ColumnRanges
	shapeProvider *ShapeProvider
	outputShape   []int // nil when any dimension has an UNCONSTRAINED range
}

// Make builds a ColumnMapping for column under selection, treating
// selection as outermost-first (C order), the default a caller not
// otherwise concerned with dimension ordering should use.
func Make(column Column, selection Selection) (*ColumnMapping, error) {
	return MakeOrdered(column, selection, OrderC)
}

// MakeOrdered is Make with an explicit Selection ordering.
func MakeOrdered(column Column, selection Selection, order Order) (*ColumnMapping, error) {
	sel := selection
	if order == OrderC {
		sel = reverseSelection(selection)
	}

	shapeProvider, err := NewShapeProvider(column, sel)
	if err != nil {
		return nil, err
	}

	maps := makeMaps(shapeProvider, sel)

	ranges, err := makeRanges(shapeProvider, maps)
	if err != nil {
		return nil, err
	}

	if len(ranges) == 0 {
		return nil, colerrors.Newf(colerrors.TypeExecutionError,
			"zero ranges generated for column %s", column.Name())
	}
	for dim, cr := range ranges {
		if len(cr) == 0 {
			return nil, colerrors.Newf(colerrors.TypeExecutionError,
				"zero ranges generated for dimension %d of column %s", dim, column.Name())
		}
	}

	outputShape := maybeMakeOutputShape(ranges)

	return &ColumnMapping{
		column:        column,
		maps:          maps,
		ranges:        ranges,
		shapeProvider: shapeProvider,
		outputShape:   outputShape,
	}, nil
}

// makeMaps builds a ColumnMap per dimension from selection. Dimensions
// without a corresponding selection entry get an empty ColumnMap.
func makeMaps(shapeProvider *ShapeProvider, selection Selection) ColumnMaps {
	ndim := shapeProvider.NDim()
	maps := make(ColumnMaps, 0, ndim)

	for dim := 0; dim < ndim; dim++ {
		sdim := selectDim(dim, len(selection), ndim)
		if sdim < 0 || len(selection) == 0 || len(selection[sdim]) == 0 {
			maps = append(maps, ColumnMap{})
			continue
		}

		dimIDs := selection[sdim]
		columnMap := make(ColumnMap, len(dimIDs))
		for mem, disk := range dimIDs {
			columnMap[mem] = IdMap{Disk: disk, Mem: RowID(mem)}
		}

		sort.SliceStable(columnMap, func(i, j int) bool {
			return columnMap[i].Disk < columnMap[j].Disk
		})

		maps = append(maps, columnMap)
	}

	return maps
}

// coalesceMapRanges groups a sorted ColumnMap into maximal RangeMap runs
// of physically contiguous disk indices.
func coalesceMapRanges(columnMap ColumnMap) ColumnRange {
	columnRange := make(ColumnRange, 0, len(columnMap))
	current := Range{Start: 0, End: 1, Type: RangeMap}

	for i := 1; i < len(columnMap); i++ {
		if columnMap[i].Disk-columnMap[i-1].Disk == 1 {
			current.End++
		} else {
			columnRange = append(columnRange, current)
			current = Range{Start: RowID(i), End: RowID(i + 1), Type: RangeMap}
		}
	}
	columnRange = append(columnRange, current)
	return columnRange
}

// makeFixedRanges builds ranges for a column known (declared or in
// practice) to have one shape across every selected row, allowing
// ranges to span multiple rows.
func makeFixedRanges(shapeProvider *ShapeProvider, maps ColumnMaps) (ColumnRanges, error) {
	ndim := shapeProvider.NDim()
	ranges := make(ColumnRanges, 0, ndim)

	for dim := 0; dim < ndim; dim++ {
		if dim >= len(maps) || len(maps[dim]) == 0 {
			dimSize, err := shapeProvider.DimSize(dim)
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, ColumnRange{{Start: 0, End: dimSize, Type: RangeFree}})
			continue
		}

		ranges = append(ranges, coalesceMapRanges(maps[dim]))
	}

	return ranges, nil
}

// makeVariableRanges builds ranges for a genuinely variable-shape
// column: per-row shapes differ, so a rectangular read can span at most
// one row, and the row dimension is enumerated one row at a time.
func makeVariableRanges(shapeProvider *ShapeProvider, maps ColumnMaps) (ColumnRanges, error) {
	ndim := shapeProvider.NDim()
	rowDim := ndim - 1
	ranges := make(ColumnRanges, 0, ndim)

	for dim := 0; dim < rowDim; dim++ {
		if dim >= len(maps) || len(maps[dim]) == 0 {
			ranges = append(ranges, ColumnRange{{Start: 0, End: 0, Type: RangeUnconstrained}})
			continue
		}
		ranges = append(ranges, coalesceMapRanges(maps[dim]))
	}

	var rowRange ColumnRange
	if len(maps) == 0 || len(maps[rowDim]) == 0 {
		dimSize, err := shapeProvider.DimSize(rowDim)
		if err != nil {
			return nil, err
		}
		rowRange = make(ColumnRange, 0, dimSize)
		for r := RowID(0); r < dimSize; r++ {
			rowRange = append(rowRange, Range{Start: r, End: r + 1, Type: RangeFree})
		}
	} else {
		rowMaps := maps[rowDim]
		rowRange = make(ColumnRange, 0, len(rowMaps))
		for r := 0; r < len(rowMaps); r++ {
			rowRange = append(rowRange, Range{Start: RowID(r), End: RowID(r + 1), Type: RangeMap})
		}
	}
	ranges = append(ranges, rowRange)

	return ranges, nil
}

// makeRanges dispatches to the fixed or variable range-construction
// path based on whether the column is actually fixed under this
// selection.
func makeRanges(shapeProvider *ShapeProvider, maps ColumnMaps) (ColumnRanges, error) {
	if shapeProvider.IsActuallyFixed() {
		return makeFixedRanges(shapeProvider, maps)
	}
	return makeVariableRanges(shapeProvider, maps)
}

// maybeMakeOutputShape sums range sizes per dimension into a fixed
// output shape, or returns nil if any dimension contains an
// UNCONSTRAINED range whose size can't be known until iteration time.
func maybeMakeOutputShape(ranges ColumnRanges) []int {
	shape := make([]int, len(ranges))

	for dim, columnRange := range ranges {
		var size RowID
		for _, r := range columnRange {
			switch r.Type {
			case RangeFree, RangeMap:
				size += r.NRows()
			case RangeUnconstrained:
				return nil
			}
		}
		shape[dim] = int(size)
	}

	return shape
}

// DimMaps returns the ColumnMap for dimension dim.
func (m *ColumnMapping) DimMaps(dim int) ColumnMap { return m.maps[dim] }

// DimRanges returns the ColumnRange for dimension dim.
func (m *ColumnMapping) DimRanges(dim int) ColumnRange { return m.ranges[dim] }

// NDim returns the total number of dimensions, including the row
// dimension.
func (m *ColumnMapping) NDim() int { return m.shapeProvider.NDim() }

// RowDim returns the index of the row dimension.
func (m *ColumnMapping) RowDim() int { return m.NDim() - 1 }

// IsFixedShape reports whether the column is actually fixed-shape under
// this selection (declared fixed, or declared variable but every
// selected row shares one shape).
func (m *ColumnMapping) IsFixedShape() bool { return m.shapeProvider.IsActuallyFixed() }

// RowDimSize returns the extent of non-row dimension dim for the row at
// the given position within the current row selection.
func (m *ColumnMapping) RowDimSize(row RowID, dim int) RowID {
	return m.shapeProvider.RowDimSize(row, dim)
}

// rowPositionToShapeIndex resolves a row-dimension position back to the
// position VariableShapeData indexes its per-row shapes by.
// VariableShapeData enumerates rows in the caller's original selection
// order, but a MAP row range walks positions into the row ColumnMap
// after it has been sorted by disk index; Mem recovers the pre-sort
// position. When the row dimension has no map (a FREE row range), it
// was never reordered, so pos is already the right index. Every site
// that turns a row-dimension position into a VariableShapeData index —
// rowShapeIndex, FlatOffset, RangeIterator.updateState — must go
// through this one conversion, or the sorted and original-order views
// of the row dimension drift apart.
func (m *ColumnMapping) rowPositionToShapeIndex(pos RowID) RowID {
	rowMap := m.maps[m.RowDim()]
	if len(rowMap) == 0 {
		return pos
	}
	return rowMap[pos].Mem
}

// rowShapeIndex resolves a row range in the row dimension's ColumnRange
// back to the position VariableShapeData indexes its per-row shapes by.
func (m *ColumnMapping) rowShapeIndex(rowRange Range) RowID {
	return m.rowPositionToShapeIndex(rowRange.Start)
}

// GetOutputShape returns the fixed output shape of the selection, or a
// TypeInvalid error if the column's output shape cannot be known ahead
// of iteration (i.e. it contains an UNCONSTRAINED dimension).
func (m *ColumnMapping) GetOutputShape() ([]int, error) {
	if m.outputShape != nil {
		out := make([]int, len(m.outputShape))
		copy(out, m.outputShape)
		return out, nil
	}
	return nil, colerrors.Newf(colerrors.TypeInvalid,
		"column %s does not have a fixed shape", m.column.Name())
}

// FlatOffset computes the row-major flat offset into the output buffer
// for the given ND index (one coordinate per dimension, row dimension
// last).
func (m *ColumnMapping) FlatOffset(index []RowID) RowID {
	rowDim := m.RowDim()

	if m.outputShape != nil {
		var result, product RowID = 0, 1
		for dim := 0; dim < rowDim; dim++ {
			result += index[dim] * product
			product *= RowID(m.outputShape[dim])
		}
		return result + product*index[rowDim]
	}

	// index[rowDim] is a scan position: how many rows RangeIterator has
	// visited so far, in disk-sorted order. varData's offsets are built
	// per row in the caller's original selection order, so every use of
	// a row position against those offsets must first be converted with
	// rowPositionToShapeIndex, the same conversion NElements and
	// RangeIterator.updateState use. The output buffer itself is filled
	// in scan order too, so the running prefix below must accumulate
	// scan positions before index[rowDim], converting each one before
	// looking up its row total.
	result := index[0]
	scanRow := index[rowDim]
	shapeRow := m.rowPositionToShapeIndex(scanRow)
	offsets := m.shapeProvider.varData.offsets

	for dim := 1; dim < rowDim; dim++ {
		result += index[dim] * offsets[dim-1][shapeRow]
	}

	rowTotals := offsets[len(offsets)-1]
	var sum RowID
	for p := RowID(0); p < scanRow; p++ {
		sum += rowTotals[m.rowPositionToShapeIndex(p)]
	}
	return result + sum
}

// NRanges returns the total number of disjoint rectangular regions this
// mapping enumerates: the product, over dimensions, of the number of
// ranges in that dimension.
func (m *ColumnMapping) NRanges() RowID {
	n := RowID(1)
	for _, cr := range m.ranges {
		n *= RowID(len(cr))
	}
	return n
}

// IsSimple reports whether the selection resolves to exactly one
// rectangular disk read and one rectangular memory write: every
// dimension has exactly one range, and every MAP range is contiguous in
// both disk and memory order. When true, a consumer needs no
// MapIterator and may memcpy the slab directly.
func (m *ColumnMapping) IsSimple() bool {
	for dim := 0; dim < m.NDim(); dim++ {
		columnMap := m.maps[dim]
		columnRange := m.ranges[dim]

		if len(columnRange) > 1 {
			return false
		}

		for _, r := range columnRange {
			if r.Type != RangeMap {
				continue
			}
			for i := r.Start + 1; i < r.End; i++ {
				if columnMap[i].Mem-columnMap[i-1].Mem != 1 {
					return false
				}
				if columnMap[i].Disk-columnMap[i-1].Disk != 1 {
					return false
				}
			}
		}
	}
	return true
}

// NElements returns the total number of elements the selection
// enumerates.
func (m *ColumnMapping) NElements() RowID {
	rowRanges := m.ranges[m.RowDim()]
	var elements RowID

	for rrID := 0; rrID < len(rowRanges); rrID++ {
		rowRange := rowRanges[rrID]
		rowElements := rowRange.NRows()

		for dim := 0; dim < m.RowDim(); dim++ {
			var dimElements RowID
			for _, r := range m.ranges[dim] {
				if r.IsUnconstrained() {
					dimElements += m.shapeProvider.RowDimSize(m.rowShapeIndex(rowRange), dim)
				} else {
					dimElements += r.NRows()
				}
			}
			rowElements *= dimElements
		}

		elements += rowElements
	}

	return elements
}
