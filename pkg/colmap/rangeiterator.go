package colmap

// RangeIterator walks the Cartesian product of a ColumnMapping's
// per-dimension ranges, innermost dimension fastest, yielding one
// rectangular disk region and one rectangular memory region per
// position. It carries its own cursor and must not be shared across
// goroutines, though the ColumnMapping it iterates may be.
type RangeIterator struct {
	mapping     *ColumnMapping
	index       []int
	diskStart   []RowID
	memStart    []RowID
	rangeLength []RowID
	done        bool
}

func newRangeIterator(mapping *ColumnMapping, done bool) *RangeIterator {
	n := mapping.NDim()
	it := &RangeIterator{
		mapping:     mapping,
		index:       make([]int, n),
		diskStart:   make([]RowID, n),
		memStart:    make([]RowID, n),
		rangeLength: make([]RowID, n),
		done:        done,
	}
	it.updateState()
	return it
}

// RangeBegin returns an iterator positioned at the first range.
func (m *ColumnMapping) RangeBegin() *RangeIterator { return newRangeIterator(m, false) }

// RangeEnd returns the sentinel "done" iterator, for equality
// comparison against an iterator run to exhaustion.
func (m *ColumnMapping) RangeEnd() *RangeIterator { return newRangeIterator(m, true) }

// NDim returns the number of dimensions this iterator walks.
func (r *RangeIterator) NDim() int { return len(r.index) }

// RowDim returns the index of the row dimension.
func (r *RangeIterator) RowDim() int { return r.NDim() - 1 }

// Done reports whether iteration has completed: the row-dimension index
// would overflow on the next advance.
func (r *RangeIterator) Done() bool { return r.done }

func (r *RangeIterator) dimRange(dim int) Range {
	return r.mapping.DimRanges(dim)[r.index[dim]]
}

func (r *RangeIterator) updateState() {
	for dim := 0; dim < r.NDim(); dim++ {
		rg := r.dimRange(dim)
		switch rg.Type {
		case RangeFree:
			r.diskStart[dim] = rg.Start
			r.rangeLength[dim] = rg.End - rg.Start
		case RangeMap:
			dimMaps := r.mapping.DimMaps(dim)
			start := dimMaps[rg.Start].Disk
			r.diskStart[dim] = start
			r.rangeLength[dim] = dimMaps[rg.End-1].Disk - start + 1
		case RangeUnconstrained:
			// Only ever placed on a non-row dimension of a variable
			// column, whose row dimension has been split one row at a
			// time, so the current row range is always single-row.
			rowRange := r.dimRange(r.RowDim())
			r.diskStart[dim] = 0
			r.rangeLength[dim] = r.mapping.RowDimSize(r.mapping.rowShapeIndex(rowRange), dim)
		}
	}
}

// Next advances the iterator to the next range position, odometer-style
// with the innermost dimension varying fastest. It panics if called
// after Done reports true, mirroring the "iteration is infallible but
// bounded" contract: callers are expected to check Done first.
func (r *RangeIterator) Next() {
	if r.done {
		panic("colmap: Next called on an exhausted RangeIterator")
	}

	dim := 0
	for dim < r.NDim() {
		r.index[dim]++
		r.memStart[dim] += r.rangeLength[dim]

		if r.index[dim] < len(r.mapping.DimRanges(dim)) {
			r.updateState()
			return
		}
		if dim < r.RowDim() {
			r.index[dim] = 0
			r.memStart[dim] = 0
			dim++
			continue
		}
		r.done = true
		return
	}
}

// GetRowSlicer returns the inclusive row-dimension slicer for the
// current position.
func (r *RangeIterator) GetRowSlicer() Slicer {
	start := r.diskStart[r.RowDim()]
	length := r.rangeLength[r.RowDim()]
	return Slicer{Lower: []RowID{start}, Upper: []RowID{start + length - 1}}
}

// GetSectionSlicer returns the inclusive non-row-dimension slicer for
// the current position.
func (r *RangeIterator) GetSectionSlicer() Slicer {
	rowDim := r.RowDim()
	lower := make([]RowID, rowDim)
	upper := make([]RowID, rowDim)
	for dim := 0; dim < rowDim; dim++ {
		lower[dim] = r.diskStart[dim]
		upper[dim] = r.diskStart[dim] + r.rangeLength[dim] - 1
	}
	return Slicer{Lower: lower, Upper: upper}
}

// MapBegin returns a MapIterator positioned at the first element of the
// rectangle at the current range position.
func (r *RangeIterator) MapBegin() *MapIterator { return newMapIterator(r, false) }

// MapEnd returns the sentinel "done" MapIterator for the current
// rectangle.
func (r *RangeIterator) MapEnd() *MapIterator { return newMapIterator(r, true) }

// Equal reports whether r and other refer to the same ColumnMapping and
// are at the same position (or both done).
func (r *RangeIterator) Equal(other *RangeIterator) bool {
	if r.mapping != other.mapping || r.done != other.done {
		return false
	}
	if r.done {
		return true
	}
	for i := range r.index {
		if r.index[i] != other.index[i] {
			return false
		}
	}
	return true
}
