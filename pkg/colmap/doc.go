// Package colmap implements the column mapping planner: given a
// description of a table column (fixed or variable per-row shape) and a
// caller-supplied multi-dimensional selection of indices, it produces a
// plan enumerating the disk regions to read and the memory regions to
// scatter them into.
//
// The planner never touches storage itself. It consumes a Column, which
// is the caller's tabular storage engine expressed as the small set of
// capabilities the planner needs: whether the column has a fixed shape,
// how many non-row dimensions it has, its per-row shape, and whether a
// given row is defined. Everything downstream — opening the table,
// locking, decoding element types, issuing the actual reads — is the
// caller's responsibility.
//
// Construction (Make) is where all validation happens; iteration via
// RangeIterator and MapIterator is infallible and single-threaded per
// iterator, though a *ColumnMapping itself is immutable and safe to
// share across goroutines once built.
package colmap
