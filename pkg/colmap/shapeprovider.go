package colmap

import (
	"github.com/ratt-ru/casa-arrow/pkg/colerrors"
)

// variableShapeData collects, validates and caches per-row shapes for a
// variable-shape column under a selection. It also detects the
// "actually fixed" case: a variable-shape column whose rows all happen
// to share the same shape under the current selection.
type variableShapeData struct {
	// rowShapes[i] is the clipped shape of the i-th target row, in
	// selection order.
	rowShapes [][]int
	// offsets[dim][i] is the inclusive running product
	// rowShapes[i][0] * ... * rowShapes[i][dim], over non-row
	// dimensions only.
	offsets [][]RowID
	// ndim is the number of non-row dimensions.
	ndim int
	// shape is the common row shape, set only when every row's clipped
	// shape is identical.
	shape []int
}

// clipShape clips shape against any per-dimension selection, validating
// that every selected index is within the original extent.
func clipShape(shape []int, selection Selection) ([]int, error) {
	if len(selection) <= 1 {
		out := make([]int, len(shape))
		copy(out, shape)
		return out, nil
	}

	clipped := make([]int, len(shape))
	copy(clipped, shape)

	for dim := 0; dim < len(shape); dim++ {
		sdim := selectDim(dim, len(selection), len(shape)+1)
		if sdim < 0 || len(selection[sdim]) == 0 {
			continue
		}
		for _, idx := range selection[sdim] {
			if idx >= RowID(clipped[dim]) {
				return nil, colerrors.Newf(colerrors.TypeInvalid,
					"selection index %d exceeds dimension %d of shape %v", idx, dim, clipped)
			}
		}
		clipped[dim] = len(selection[sdim])
	}

	return clipped, nil
}

// makeVariableShapeData builds a variableShapeData for a variable-shape
// column. column.IsFixedShape() must be false.
func makeVariableShapeData(column Column, selection Selection) (*variableShapeData, error) {
	var targetRows RowIDs
	haveRowSelection := len(selection) > 0 && len(selection[len(selection)-1]) > 0
	if haveRowSelection {
		targetRows = selection[len(selection)-1]
	} else {
		targetRows = make(RowIDs, column.NRow())
		for r := RowID(0); r < column.NRow(); r++ {
			targetRows[r] = r
		}
	}

	rowShapes := make([][]int, 0, len(targetRows))
	fixedShape := true
	fixedDims := true

	for i, row := range targetRows {
		if !column.IsDefined(row) {
			return nil, colerrors.Newf(colerrors.TypeNotImplemented,
				"row %d in column %s is not defined", row, column.Name())
		}

		shape, err := column.Shape(row)
		if err != nil {
			return nil, colerrors.Wrapf(err, colerrors.TypeInvalid,
				"failed to read shape for row %d of column %s", row, column.Name())
		}

		clipped, err := clipShape(shape, selection)
		if err != nil {
			return nil, err
		}

		rowShapes = append(rowShapes, clipped)
		if i > 0 {
			fixedShape = fixedShape && sameShape(rowShapes[len(rowShapes)-1], rowShapes[0])
			fixedDims = fixedDims && len(rowShapes[len(rowShapes)-1]) == len(rowShapes[0])
		}
	}

	if !fixedDims {
		return nil, colerrors.Newf(colerrors.TypeNotImplemented,
			"column %s dimensions vary per row", column.Name())
	}

	ndim := 0
	if len(rowShapes) > 0 {
		ndim = len(rowShapes[0])
	}

	offsets := make([][]RowID, ndim)
	for dim := range offsets {
		offsets[dim] = make([]RowID, len(rowShapes))
	}

	for r := range rowShapes {
		product := RowID(1)
		for dim := 0; dim < ndim; dim++ {
			product *= RowID(rowShapes[r][dim])
			offsets[dim][r] = product
		}
	}

	var shape []int
	if fixedShape && len(rowShapes) > 0 {
		shape = make([]int, ndim)
		copy(shape, rowShapes[0])
	}

	return &variableShapeData{
		rowShapes: rowShapes,
		offsets:   offsets,
		ndim:      ndim,
		shape:     shape,
	}, nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isActuallyFixed reports whether every target row shares a common
// shape, even though the column is declared variable-shape.
func (v *variableShapeData) isActuallyFixed() bool { return v.shape != nil }

// nDim returns the number of non-row dimensions.
func (v *variableShapeData) nDim() int { return v.ndim }

// ShapeProvider is a uniform view over fixed and variable-shape columns
// that answers dimensionality and per-dimension-size queries under a
// selection.
type ShapeProvider struct {
	column    Column
	selection Selection
	varData   *variableShapeData // nil for definitely-fixed columns
}

// NewShapeProvider builds a ShapeProvider for column under selection.
// selection must already be in innermost-first (F) order.
func NewShapeProvider(column Column, selection Selection) (*ShapeProvider, error) {
	if column.IsFixedShape() {
		return &ShapeProvider{column: column, selection: selection}, nil
	}

	varData, err := makeVariableShapeData(column, selection)
	if err != nil {
		return nil, err
	}
	return &ShapeProvider{column: column, selection: selection, varData: varData}, nil
}

// IsDefinitelyFixed reports whether the column declares a fixed shape.
func (s *ShapeProvider) IsDefinitelyFixed() bool { return s.varData == nil }

// IsVarying reports whether the column declares a variable shape (even
// if it turns out to be actually fixed under this selection).
func (s *ShapeProvider) IsVarying() bool { return !s.IsDefinitelyFixed() }

// IsActuallyFixed reports whether a rectangular multi-row read is legal:
// either the column declares a fixed shape, or it declares a variable
// shape but every selected row happens to share one.
func (s *ShapeProvider) IsActuallyFixed() bool {
	return s.IsDefinitelyFixed() || s.varData.isActuallyFixed()
}

// NDim returns the total number of dimensions, including the row
// dimension.
func (s *ShapeProvider) NDim() int {
	if s.IsDefinitelyFixed() {
		return s.column.NDim() + 1
	}
	return s.varData.nDim() + 1
}

// RowDim returns the index of the row dimension: always the last,
// slowest-varying dimension.
func (s *ShapeProvider) RowDim() int { return s.NDim() - 1 }

// DimSize returns the extent of dimension dim under the current
// selection.
func (s *ShapeProvider) DimSize(dim int) (RowID, error) {
	sdim := selectDim(dim, len(s.selection), s.NDim())
	if sdim >= 0 && len(s.selection) > 0 && len(s.selection[sdim]) > 0 {
		return RowID(len(s.selection[sdim])), nil
	}

	if dim == s.RowDim() {
		return s.column.NRow(), nil
	}

	if s.IsDefinitelyFixed() {
		shape := s.column.ShapeColumn()
		return RowID(shape[dim]), nil
	}

	if s.varData.shape == nil {
		return 0, colerrors.Newf(colerrors.TypeIndexError,
			"dimension %d in column %s is not fixed", dim, s.column.Name())
	}
	return RowID(s.varData.shape[dim]), nil
}

// RowDimSize returns the extent of non-row dimension dim for the given
// row, which must be an index into the current selection's target rows
// (i.e. a position, not necessarily a disk row id). Valid only for
// varying columns.
func (s *ShapeProvider) RowDimSize(row RowID, dim int) RowID {
	return RowID(s.varData.rowShapes[row][dim])
}
