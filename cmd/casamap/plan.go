package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ratt-ru/casa-arrow/pkg/casajson"
	"github.com/ratt-ru/casa-arrow/pkg/colmap"
	"github.com/ratt-ru/casa-arrow/pkg/logger"
	"github.com/ratt-ru/casa-arrow/pkg/observability"
)

// dimPlan is the JSON-dumpable view of one dimension's ranges and map,
// used by `casamap plan --format=json`.
type dimPlan struct {
	Ranges []colmap.Range `json:"ranges"`
	Map    []colmap.IdMap `json:"map,omitempty"`
}

// planDump is the full JSON dump of a ColumnMapping.
type planDump struct {
	Column    string    `json:"column"`
	NDim      int       `json:"ndim"`
	NRanges   uint64    `json:"nranges"`
	NElements uint64    `json:"nelements"`
	Simple    bool      `json:"simple"`
	Dims      []dimPlan `json:"dims"`
}

func newPlanCmd() *cobra.Command {
	var tablePath, columnName, selectJSON, order, format string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a ColumnMapping against a table fixture and column selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTableFixture(tablePath)
			if err != nil {
				return err
			}
			col, ok := table.Column(columnName)
			if !ok {
				return fmt.Errorf("table %q has no column %q", table.Name(), columnName)
			}

			var sel colmap.Selection
			if selectJSON != "" {
				if err := casajson.Unmarshal([]byte(selectJSON), &sel); err != nil {
					return fmt.Errorf("parsing --select: %w", err)
				}
			}

			ord := colmap.OrderC
			if order == "f" || order == "F" {
				ord = colmap.OrderF
			}

			_, span := observability.StartPlanSpan(context.Background(), columnName)
			mapping, err := colmap.MakeOrdered(col, sel, ord)
			span.End()
			if err != nil {
				return fmt.Errorf("building mapping: %w", err)
			}

			nRanges, nElements, simple := mapping.NRanges(), mapping.NElements(), mapping.IsSimple()
			observability.ObserveMapping(columnName, int(nRanges), int(nElements), simple)
			logger.Debug("column mapping built",
				zap.String("column", columnName),
				zap.Bool("simple", simple),
			)

			if format == "json" {
				dump := planDump{
					Column:    columnName,
					NDim:      mapping.NDim(),
					NRanges:   nRanges,
					NElements: nElements,
					Simple:    simple,
				}
				for d := 0; d < mapping.NDim(); d++ {
					dump.Dims = append(dump.Dims, dimPlan{
						Ranges: mapping.DimRanges(d),
						Map:    mapping.DimMaps(d),
					})
				}
				out, err := casajson.MarshalIndent(dump, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Printf("column:    %s\n", columnName)
			fmt.Printf("ndim:      %d\n", mapping.NDim())
			fmt.Printf("nranges:   %d\n", nRanges)
			fmt.Printf("nelements: %d\n", nElements)
			fmt.Printf("simple:    %t\n", simple)
			return nil
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "path to a YAML table fixture (required)")
	cmd.Flags().StringVar(&columnName, "column", "", "column name within the table (required)")
	cmd.Flags().StringVar(&selectJSON, "select", "", "selection as a JSON array of index arrays, e.g. [[0,1],[]]")
	cmd.Flags().StringVar(&order, "order", "c", "selection dimension order: c or f")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}
