package main

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/spf13/cobra"

	"github.com/ratt-ru/casa-arrow/pkg/groupsort"
	"github.com/ratt-ru/casa-arrow/pkg/observability"
)

func buildGroupSortData(mem memory.Allocator, f *groupsortFixture) (*groupsort.GroupSortData, error) {
	groupCols := make([]*array.Int32, len(f.Groups))
	for i, g := range f.Groups {
		b := array.NewInt32Builder(mem)
		b.AppendValues(g, nil)
		groupCols[i] = b.NewInt32Array()
		b.Release()
	}

	timeB := array.NewFloat64Builder(mem)
	timeB.AppendValues(f.Time, nil)
	timeCol := timeB.NewFloat64Array()
	timeB.Release()

	ant1B := array.NewInt32Builder(mem)
	ant1B.AppendValues(f.Ant1, nil)
	ant1Col := ant1B.NewInt32Array()
	ant1B.Release()

	ant2B := array.NewInt32Builder(mem)
	ant2B.AppendValues(f.Ant2, nil)
	ant2Col := ant2B.NewInt32Array()
	ant2B.Release()

	rowsB := array.NewInt64Builder(mem)
	rowsB.AppendValues(f.Rows, nil)
	rowsCol := rowsB.NewInt64Array()
	rowsB.Release()

	return groupsort.Make(groupCols, timeCol, ant1Col, ant2Col, rowsCol)
}

func printGroupSortData(d *groupsort.GroupSortData) {
	for r := 0; r < d.Len(); r++ {
		groups := make([]int32, d.NGroups())
		for g := range groups {
			groups[g] = d.Group(g, r)
		}
		fmt.Printf("row=%d groups=%v time=%g ant1=%d ant2=%d\n",
			d.Row(r), groups, d.Time(r), d.Ant1(r), d.Ant2(r))
	}
}

func newSortCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Stably sort a YAML-described row shard into ascending lexicographic order",
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := loadGroupsortFixture(inputPath)
			if err != nil {
				return err
			}

			mem := memory.NewGoAllocator()
			data, err := buildGroupSortData(mem, fixture)
			if err != nil {
				return err
			}

			_, span := observability.StartSortSpan(context.Background(), "sort")
			var sorted *groupsort.GroupSortData
			err = observability.TimeOperation("sort", func() error {
				sorted = data.Sort(mem)
				return nil
			})
			span.End()
			if err != nil {
				return err
			}

			printGroupSortData(sorted)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to a YAML row-shard fixture (required)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newMergeCmd() *cobra.Command {
	var inputPaths []string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "K-way merge already-sorted YAML-described row shards",
		RunE: func(cmd *cobra.Command, args []string) error {
			mem := memory.NewGoAllocator()

			shards := make([]*groupsort.GroupSortData, 0, len(inputPaths))
			for _, p := range inputPaths {
				fixture, err := loadGroupsortFixture(p)
				if err != nil {
					return err
				}
				data, err := buildGroupSortData(mem, fixture)
				if err != nil {
					return err
				}
				shards = append(shards, data)
			}

			_, span := observability.StartSortSpan(context.Background(), "merge")
			var merged *groupsort.GroupSortData
			err := observability.TimeOperation("merge", func() error {
				var err error
				merged, err = groupsort.Merge(mem, shards)
				return err
			})
			span.End()
			if err != nil {
				return err
			}

			printGroupSortData(merged)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&inputPaths, "inputs", nil, "paths to YAML row-shard fixtures (required)")
	_ = cmd.MarkFlagRequired("inputs")
	return cmd
}
