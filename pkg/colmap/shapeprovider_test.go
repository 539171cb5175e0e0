package colmap

import (
	"testing"

	"github.com/ratt-ru/casa-arrow/pkg/colerrors"
)

func TestShapeProviderFixedColumn(t *testing.T) {
	col := fixedColumn("DATA", 10, 2, 4)
	sp, err := NewShapeProvider(col, Selection{{}})
	if err != nil {
		t.Fatalf("NewShapeProvider: %v", err)
	}

	if !sp.IsDefinitelyFixed() {
		t.Error("expected IsDefinitelyFixed")
	}
	if !sp.IsActuallyFixed() {
		t.Error("expected IsActuallyFixed")
	}
	if sp.IsVarying() {
		t.Error("did not expect IsVarying")
	}
	if got, want := sp.NDim(), 3; got != want {
		t.Errorf("NDim() = %d, want %d", got, want)
	}
	if got, want := sp.RowDim(), 2; got != want {
		t.Errorf("RowDim() = %d, want %d", got, want)
	}

	for dim, want := range []RowID{2, 4, 10} {
		got, err := sp.DimSize(dim)
		if err != nil {
			t.Fatalf("DimSize(%d): %v", dim, err)
		}
		if got != want {
			t.Errorf("DimSize(%d) = %d, want %d", dim, got, want)
		}
	}
}

func TestShapeProviderVariableColumnUniformShape(t *testing.T) {
	shapes := map[RowID][]int{0: {2, 3}, 1: {2, 3}, 2: {2, 3}}
	col := variableColumn("WEIGHT", 3, 2, shapes)

	sp, err := NewShapeProvider(col, Selection{{}})
	if err != nil {
		t.Fatalf("NewShapeProvider: %v", err)
	}

	if sp.IsDefinitelyFixed() {
		t.Error("did not expect IsDefinitelyFixed")
	}
	if !sp.IsVarying() {
		t.Error("expected IsVarying")
	}
	if !sp.IsActuallyFixed() {
		t.Error("expected IsActuallyFixed for uniform per-row shapes")
	}
}

func TestShapeProviderVariableColumnRaggedShape(t *testing.T) {
	shapes := map[RowID][]int{0: {2, 3}, 1: {4, 1}, 2: {2, 3}}
	col := variableColumn("WEIGHT", 3, 2, shapes)

	sp, err := NewShapeProvider(col, Selection{{}})
	if err != nil {
		t.Fatalf("NewShapeProvider: %v", err)
	}

	if sp.IsActuallyFixed() {
		t.Error("did not expect IsActuallyFixed for ragged per-row shapes")
	}
	if got, want := sp.RowDimSize(0, 0), RowID(2); got != want {
		t.Errorf("RowDimSize(0,0) = %d, want %d", got, want)
	}
	if got, want := sp.RowDimSize(1, 0), RowID(4); got != want {
		t.Errorf("RowDimSize(1,0) = %d, want %d", got, want)
	}
}

func TestShapeProviderUndefinedRowFails(t *testing.T) {
	col := variableColumn("WEIGHT", 2, 2, map[RowID][]int{0: {2, 3}})
	col.undefined = map[RowID]bool{1: true}

	_, err := NewShapeProvider(col, Selection{{}})
	if err == nil {
		t.Fatal("expected error for undefined row")
	}
	if !colerrors.IsType(err, colerrors.TypeNotImplemented) {
		t.Errorf("expected TypeNotImplemented, got %v", err)
	}
}

func TestClipShapeRejectsOutOfRangeIndex(t *testing.T) {
	_, err := clipShape([]int{2, 2}, Selection{{5}, {}})
	if err == nil {
		t.Fatal("expected error for out-of-range selection index")
	}
	if !colerrors.IsType(err, colerrors.TypeInvalid) {
		t.Errorf("expected TypeInvalid, got %v", err)
	}
}
