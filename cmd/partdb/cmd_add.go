package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"partdb/internal/component"
	"partdb/internal/digikey"
	"partdb/internal/render"
	"partdb/internal/store"
)

var (
	addFromDigikey  bool
	addFromCSV      bool
	addIncrement    bool
	addUpdate       bool
	addNoDB         bool
	addShow         bool
	addShowCSV      bool
	addShowResponse bool
)

// addCmd adds parts to the database, from Digikey part numbers or CSV
// files.
var addCmd = &cobra.Command{
	Use:   "add [part numbers or files]",
	Short: "Add parts to the database",
	Long: `Adds one or more parts to the database.

With --digikey, the arguments are Digikey part numbers; part data is
fetched from the Digikey API. With --csv, the arguments are CSV files
with one part per row; each row must contain all columns for its
component type.

Examples:
  partdb add --digikey YAG2320CT-ND 296-1395-1-ND
  partdb add --csv resistors.csv --increment-duplicates`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVarP(&addFromDigikey, "digikey", "d", false,
		"Treat arguments as Digikey part numbers")
	addCmd.Flags().BoolVar(&addFromCSV, "csv", false,
		"Treat arguments as CSV files")
	addCmd.MarkFlagsOneRequired("digikey", "csv")
	addCmd.MarkFlagsMutuallyExclusive("digikey", "csv")

	addCmd.Flags().BoolVarP(&addIncrement, "increment-duplicates", "i", false,
		"Add a numeric suffix to the part number when a part with the same "+
			"part number already exists")
	addCmd.Flags().BoolVarP(&addUpdate, "update-existing", "u", false,
		"Overwrite an existing part with the same part number")
	addCmd.MarkFlagsMutuallyExclusive("increment-duplicates", "update-existing")

	addCmd.Flags().BoolVar(&addNoDB, "no-db", false,
		"Don't add parts to the database; useful with --show-csv")
	addCmd.Flags().BoolVar(&addShow, "show", false,
		"Print the new parts as a table")
	addCmd.Flags().BoolVar(&addShowCSV, "show-csv", false,
		"Print the new parts as CSV")
	addCmd.Flags().BoolVar(&addShowResponse, "show-api-response", false,
		"Print the raw Digikey API response for each part")
}

func runAdd(cmd *cobra.Command, args []string) error {
	var components []*component.Component
	var err error
	if addFromDigikey {
		components, err = componentsFromDigikey(cmd, args)
	} else {
		components, err = componentsFromCSVFiles(args)
	}
	if err != nil {
		return err
	}
	if len(components) == 0 {
		return fmt.Errorf("no parts could be created")
	}

	if !addNoDB {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		addComponents(st, components)
	}

	if addShow {
		fmt.Print(transposedTable(components))
	}
	if addShowCSV {
		printComponentsCSV(components)
	}
	return nil
}

func componentsFromDigikey(cmd *cobra.Command, partNumbers []string) ([]*component.Component, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	cacheDir, err := defaultCacheDir()
	if err != nil {
		return nil, err
	}
	client := digikey.NewClient(cfg.Digikey.ClientID, cfg.Digikey.ClientSecret,
		logger, digikey.WithCache(cfg.CachePath(cacheDir)))

	results := client.ProductsDetails(cmd.Context(), partNumbers)

	var components []*component.Component
	for _, r := range results {
		if r.Err != nil {
			logger.Error("skipping part",
				zap.String("part_number", r.PartNumber), zap.Error(r.Err))
			continue
		}
		if addShowResponse {
			fmt.Println(string(r.Product.Raw))
		}
		c, err := component.FromDigikey(r.Product, stdinPrompter)
		if err != nil {
			logger.Error("skipping part",
				zap.String("part_number", r.PartNumber), zap.Error(err))
			continue
		}
		components = append(components, c)
	}
	return components, nil
}

func componentsFromCSVFiles(paths []string) ([]*component.Component, error) {
	var components []*component.Component
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		r := csv.NewReader(f)
		records, err := r.ReadAll()
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if len(records) < 2 {
			return nil, fmt.Errorf("%s contains no part rows", path)
		}

		header := records[0]
		for _, row := range records[1:] {
			values := make(map[string]string, len(header))
			for i, col := range header {
				if i < len(row) {
					values[col] = row[i]
				}
			}
			c, err := component.FromRecord(values)
			if err != nil {
				logger.Error("skipping row", zap.String("file", path), zap.Error(err))
				continue
			}
			components = append(components, c)
		}
	}
	return components, nil
}

// addComponents adds each component, reporting per-part failures without
// aborting the batch.
func addComponents(st *store.Store, components []*component.Component) {
	opts := store.AddOptions{Update: addUpdate, Increment: addIncrement}
	for _, c := range components {
		res, err := st.AddComponent(c, opts)
		if err != nil {
			var dup *store.DuplicateIPNError
			if errors.As(err, &dup) {
				logger.Error("part number already in table, skipped",
					zap.String("ipn", dup.IPN), zap.String("table", dup.Table))
				continue
			}
			logger.Error("failed to add part",
				zap.String("ipn", c.IPN()), zap.Error(err))
			continue
		}
		logger.Info("added part",
			zap.String("ipn", res.IPN), zap.String("table", res.Table),
			zap.Bool("updated", res.Updated))
	}
}

// transposedTable renders components side by side: one column per part,
// one row per database column. Parts of different types are padded with
// empty cells for columns they don't have.
func transposedTable(components []*component.Component) string {
	var columns []string
	seen := map[string]bool{}
	for _, c := range components {
		for _, col := range c.Columns() {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
	}

	headers := []string{component.PrimaryKey}
	for _, c := range components {
		headers = append(headers, c.IPN())
	}
	table := render.NewTable(headers)
	for _, col := range columns {
		if col == component.PrimaryKey {
			continue
		}
		row := []string{col}
		for _, c := range components {
			row = append(row, c.Get(col))
		}
		table.AddRow(row...)
	}
	return table.Render()
}

// printComponentsCSV prints components grouped by type, with one header
// row per type.
func printComponentsCSV(components []*component.Component) {
	headerDone := map[string]bool{}
	for _, c := range components {
		header := !headerDone[c.Table()]
		headerDone[c.Table()] = true
		fmt.Print(c.ToCSV(header, true))
	}
}
