package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ratt-ru/casa-arrow/pkg/casastore"
)

// columnFixture describes one column of a YAML table fixture.
type columnFixture struct {
	Name   string           `yaml:"name"`
	Fixed  bool             `yaml:"fixed"`
	NRow   uint64           `yaml:"nrow"`
	Shape  []int            `yaml:"shape"`
	NDim   int              `yaml:"ndim"`
	Shapes map[uint64][]int `yaml:"shapes"`
}

// tableFixture is the YAML shape loaded by `casamap plan`'s --table
// flag. It is explicitly not a casacore table reader: it is a
// demonstration/test double.
type tableFixture struct {
	Name    string          `yaml:"name"`
	Columns []columnFixture `yaml:"columns"`
}

func loadTableFixture(path string) (*casastore.Table, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is an operator-supplied CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading table fixture %s: %w", path, err)
	}

	var fixture tableFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parsing table fixture %s: %w", path, err)
	}

	table := casastore.NewTable(fixture.Name)
	for _, cf := range fixture.Columns {
		var col casastore.Column
		if cf.Fixed {
			col = casastore.NewFixedColumn(cf.Name, cf.NRow, cf.Shape)
		} else {
			col = casastore.NewVariableColumn(cf.Name, cf.NRow, cf.NDim, cf.Shapes)
		}
		if err := table.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// groupsortFixture is the YAML shape loaded by `casamap sort`/`merge`.
type groupsortFixture struct {
	Groups [][]int32 `yaml:"groups"`
	Time   []float64 `yaml:"time"`
	Ant1   []int32   `yaml:"ant1"`
	Ant2   []int32   `yaml:"ant2"`
	Rows   []int64   `yaml:"rows"`
}

func loadGroupsortFixture(path string) (*groupsortFixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is an operator-supplied CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading groupsort fixture %s: %w", path, err)
	}

	var fixture groupsortFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parsing groupsort fixture %s: %w", path, err)
	}
	return &fixture, nil
}
