package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"partdb/internal/series"
	"partdb/internal/store"
)

var generateToDB bool

// generateCmd emits standard-value component series.
var generateCmd = &cobra.Command{
	Use:   "generate [resistors|capacitors|pinheaders]",
	Short: "Generate standard-value component series",
	Long: `Generates a full series of standard-value parts: E96 thin film
resistors, E12/E24 ceramic capacitors, or single-row pin headers.

By default the parts are printed as CSV, suitable for later import with
'add --csv'. With --db the parts are added directly to the database.

Examples:
  partdb generate resistors > resistors.csv
  partdb generate capacitors --db`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"resistors", "capacitors", "pinheaders"},
	RunE:      runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateToDB, "db", false,
		"Add the generated parts to the database instead of printing CSV")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	components, err := series.Generate(args[0])
	if err != nil {
		return err
	}

	if !generateToDB {
		fmt.Print(series.CSV(components))
		return nil
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	for _, c := range components {
		res, err := st.AddComponent(c, store.AddOptions{})
		if err != nil {
			logger.Error("failed to add part",
				zap.String("ipn", c.IPN()), zap.Error(err))
			continue
		}
		logger.Debug("added part",
			zap.String("ipn", res.IPN), zap.String("table", res.Table))
	}
	return nil
}
