package casastore

import (
	"sync"

	"github.com/ratt-ru/casa-arrow/pkg/colerrors"
)

// Table is a mutex-guarded named-column registry, grounded on the
// teacher's ColumnStore pattern generalized from "row of scalars" to
// "row of a shaped cell".
type Table struct {
	mu      sync.RWMutex
	name    string
	columns map[string]Column
}

// NewTable creates an empty, named table.
func NewTable(name string) *Table {
	return &Table{name: name, columns: make(map[string]Column)}
}

// Name returns the table's name.
func (t *Table) Name() string { return t.name }

// AddColumn registers col under its own Name(). It is an error to
// register two columns with the same name.
func (t *Table) AddColumn(col Column) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.columns[col.Name()]; exists {
		return colerrors.Newf(colerrors.TypeInvalid,
			"casastore: table %q already has a column named %q", t.name, col.Name())
	}
	t.columns[col.Name()] = col
	return nil
}

// Column looks up a registered column by name.
func (t *Table) Column(name string) (Column, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	col, ok := t.columns[name]
	return col, ok
}

// ColumnNames returns every registered column name, unordered.
func (t *Table) ColumnNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.columns))
	for name := range t.columns {
		names = append(names, name)
	}
	return names
}
