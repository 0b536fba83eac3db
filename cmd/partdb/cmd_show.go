package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"partdb/internal/render"
	"partdb/internal/store"
)

var (
	showTables     []string
	showColumns    []string
	showMinimal    bool
	showAll        bool
	showCSV        bool
	showTablesOnly bool
)

// showCmd dumps parts from the database.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print parts from the database",
	Long: `Prints parts from the database as an aligned table or as CSV.

By default a minimal set of columns useful for KiCad database libraries
is shown. Use --all-columns for everything, or --columns to pick
specific columns.

Examples:
  partdb show
  partdb show --tables resistor capacitor --csv
  partdb show --columns IPN MPN manufacturer`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringSliceVar(&showTables, "tables", nil,
		"Only show parts from these tables")
	showCmd.Flags().StringSliceVar(&showColumns, "columns", nil,
		"Only show these columns, in the given order")
	showCmd.Flags().BoolVar(&showMinimal, "minimal-columns", false,
		"Show the minimal columns for a KiCad database library (default)")
	showCmd.Flags().BoolVar(&showAll, "all-columns", false,
		"Show all columns")
	showCmd.Flags().BoolVar(&showCSV, "csv", false,
		"Output CSV instead of an aligned table")
	showCmd.Flags().BoolVar(&showTablesOnly, "table-names-only", false,
		"Only print the names of tables in the database")
	showCmd.MarkFlagsMutuallyExclusive("columns", "minimal-columns", "all-columns")
	showCmd.MarkFlagsMutuallyExclusive("columns", "table-names-only")
}

// selectedColumns translates the column flags into a DumpRows column
// filter. Without flags the minimal KiCad set is shown.
func selectedColumns() []string {
	switch {
	case showAll:
		return nil
	case len(showColumns) > 0:
		return showColumns
	}
	return store.MinimalColumns
}

func runShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if showTablesOnly {
		tables, err := st.TableNames()
		if err != nil {
			return err
		}
		for _, t := range tables {
			fmt.Println(t)
		}
		return nil
	}

	dump, err := st.DumpRows(showTables, selectedColumns())
	if err != nil {
		return err
	}
	if len(dump.SkippedTables) > 0 {
		fmt.Fprintf(os.Stderr, "Error: skipping nonexistent tables: %s\n",
			strings.Join(dump.SkippedTables, ", "))
	}
	if len(dump.SkippedColumns) > 0 {
		fmt.Fprintf(os.Stderr, "Error: skipping nonexistent columns: %s\n",
			strings.Join(dump.SkippedColumns, ", "))
	}

	if showCSV {
		fmt.Println(dump.CSV())
		return nil
	}

	table := render.NewTable(dump.Columns)
	for _, row := range dump.Records() {
		table.AddRow(row...)
	}
	fmt.Print(table.Render())
	return nil
}
