// Package casastore is a reference in-memory storage engine standing in
// for a real CASA table: it implements the same narrow contract
// pkg/colmap consumes, held in memory instead of in a table file. Columns
// carry only row counts and shape metadata; no cell payloads are stored.
// It exists purely so the planner has something real to plan against in
// tests, the demonstration CLI, and the integration test — it is never
// a production storage engine.
package casastore

import (
	"github.com/ratt-ru/casa-arrow/pkg/colerrors"
)

// RowID matches pkg/colmap's row-index type.
type RowID = uint64

// Column is the storage-engine contract pkg/colmap.Column mirrors,
// expressed independently so this package does not need to import
// colmap: FixedColumn and VariableColumn satisfy colmap.Column
// structurally.
type Column interface {
	Name() string
	NRow() RowID
	IsFixedShape() bool
	NDim() int
	ShapeColumn() []int
	Shape(row RowID) ([]int, error)
	IsDefined(row RowID) bool
}

// FixedColumn is a column whose every row shares one declared cell
// shape.
type FixedColumn struct {
	name  string
	nrow  RowID
	shape []int
}

// NewFixedColumn constructs a FixedColumn with nrow rows, each shaped
// like shape.
func NewFixedColumn(name string, nrow RowID, shape []int) *FixedColumn {
	return &FixedColumn{name: name, nrow: nrow, shape: append([]int(nil), shape...)}
}

func (c *FixedColumn) Name() string        { return c.name }
func (c *FixedColumn) NRow() RowID         { return c.nrow }
func (c *FixedColumn) IsFixedShape() bool  { return true }
func (c *FixedColumn) NDim() int           { return len(c.shape) }
func (c *FixedColumn) ShapeColumn() []int  { return c.shape }
func (c *FixedColumn) IsDefined(RowID) bool { return true }

// Shape always returns a TypeInvalid error: fixed columns don't have a
// per-row shape. Callers of colmap.Column must not call this method on a
// fixed-shape column, matching the contract's documented invariant.
func (c *FixedColumn) Shape(row RowID) ([]int, error) {
	return nil, colerrors.Newf(colerrors.TypeInvalid,
		"casastore: Shape called on fixed-shape column %q", c.name)
}

// VariableColumn is a column whose per-row cell shape is declared
// individually; rows not present in shapes are undefined.
type VariableColumn struct {
	name   string
	nrow   RowID
	ndim   int
	shapes map[RowID][]int
}

// NewVariableColumn constructs a VariableColumn declaring ndim
// dimensions per row, with per-row shapes given by shapes. Rows absent
// from shapes are undefined.
func NewVariableColumn(name string, nrow RowID, ndim int, shapes map[RowID][]int) *VariableColumn {
	cp := make(map[RowID][]int, len(shapes))
	for r, s := range shapes {
		cp[r] = append([]int(nil), s...)
	}
	return &VariableColumn{name: name, nrow: nrow, ndim: ndim, shapes: cp}
}

func (c *VariableColumn) Name() string       { return c.name }
func (c *VariableColumn) NRow() RowID        { return c.nrow }
func (c *VariableColumn) IsFixedShape() bool { return false }
func (c *VariableColumn) NDim() int          { return c.ndim }

// ShapeColumn always returns nil: variable columns don't have a single
// declared shape.
func (c *VariableColumn) ShapeColumn() []int {
	return nil
}

func (c *VariableColumn) IsDefined(row RowID) bool {
	_, ok := c.shapes[row]
	return ok
}

func (c *VariableColumn) Shape(row RowID) ([]int, error) {
	shape, ok := c.shapes[row]
	if !ok {
		return nil, colerrors.Newf(colerrors.TypeNotImplemented,
			"casastore: row %d of column %q is not defined", row, c.name).
			WithDetail("row", row).WithDetail("column", c.name)
	}
	return shape, nil
}
