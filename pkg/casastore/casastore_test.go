package casastore

import (
	"testing"

	"github.com/ratt-ru/casa-arrow/pkg/colerrors"
)

func TestFixedColumnBasics(t *testing.T) {
	col := NewFixedColumn("DATA", 10, []int{4, 5})

	if col.Name() != "DATA" {
		t.Errorf("Name() = %q, want DATA", col.Name())
	}
	if col.NRow() != 10 {
		t.Errorf("NRow() = %d, want 10", col.NRow())
	}
	if !col.IsFixedShape() {
		t.Error("expected IsFixedShape() true")
	}
	if col.NDim() != 2 {
		t.Errorf("NDim() = %d, want 2", col.NDim())
	}
	if got := col.ShapeColumn(); len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Errorf("ShapeColumn() = %v, want [4 5]", got)
	}
	for r := RowID(0); r < col.NRow(); r++ {
		if !col.IsDefined(r) {
			t.Errorf("row %d should be defined on a fixed column", r)
		}
	}
}

func TestFixedColumnShapeRejected(t *testing.T) {
	col := NewFixedColumn("DATA", 1, []int{2})
	_, err := col.Shape(0)
	if err == nil {
		t.Fatal("expected error calling Shape on a fixed-shape column")
	}
	if !colerrors.IsType(err, colerrors.TypeInvalid) {
		t.Errorf("expected TypeInvalid, got %v", err)
	}
}

func TestVariableColumnShapesAndUndefinedRows(t *testing.T) {
	shapes := map[RowID][]int{0: {2, 3}, 2: {5, 1}}
	col := NewVariableColumn("DATA", 3, 2, shapes)

	if col.IsFixedShape() {
		t.Error("expected IsFixedShape() false")
	}
	if !col.IsDefined(0) || col.IsDefined(1) || !col.IsDefined(2) {
		t.Error("unexpected IsDefined results")
	}

	shape, err := col.Shape(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shape[0] != 5 || shape[1] != 1 {
		t.Errorf("Shape(2) = %v, want [5 1]", shape)
	}

	_, err = col.Shape(1)
	if err == nil || !colerrors.IsType(err, colerrors.TypeNotImplemented) {
		t.Errorf("expected TypeNotImplemented for undefined row, got %v", err)
	}
}

func TestVariableColumnShapeIsCopiedNotAliased(t *testing.T) {
	shape := []int{2, 3}
	col := NewVariableColumn("DATA", 1, 2, map[RowID][]int{0: shape})
	shape[0] = 99

	got, _ := col.Shape(0)
	if got[0] != 2 {
		t.Errorf("mutating caller's slice leaked into stored shape: got %v", got)
	}
}

func TestTableAddAndLookup(t *testing.T) {
	tbl := NewTable("main")
	col := NewFixedColumn("DATA", 4, []int{2})

	if err := tbl.AddColumn(col); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}

	got, ok := tbl.Column("DATA")
	if !ok || got.Name() != "DATA" {
		t.Fatalf("Column(DATA) = %v, %v", got, ok)
	}

	if _, ok := tbl.Column("MISSING"); ok {
		t.Error("expected MISSING column to be absent")
	}
}

func TestTableRejectsDuplicateColumn(t *testing.T) {
	tbl := NewTable("main")
	if err := tbl.AddColumn(NewFixedColumn("DATA", 1, []int{1})); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	err := tbl.AddColumn(NewFixedColumn("DATA", 1, []int{1}))
	if err == nil || !colerrors.IsType(err, colerrors.TypeInvalid) {
		t.Errorf("expected TypeInvalid on duplicate column, got %v", err)
	}
}
