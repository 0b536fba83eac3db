package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"partdb/internal/store"
)

// rmCmd removes parts from the database.
var rmCmd = &cobra.Command{
	Use:   "rm [part numbers]",
	Short: "Remove parts from the database",
	Long: `Removes one or more parts from the database. Parts can be identified
by IPN, MPN, or a distributor part number; all tables are searched.

Example:
  partdb rm YAG2320CT-ND R_0_Jumper_0603_ThickFilm`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var failed bool
	for _, pn := range args {
		res, err := st.RemoveComponent(pn)
		if err != nil {
			failed = true
			var ambiguous *store.AmbiguousMatchError
			switch {
			case errors.Is(err, store.ErrNotFound):
				logger.Error("no part found", zap.String("part_number", pn))
			case errors.As(err, &ambiguous):
				logger.Error("part number matches multiple parts, not removing",
					zap.String("part_number", pn),
					zap.String("table", ambiguous.Table),
					zap.String("matches", strings.Join(ambiguous.IPNs, ", ")))
			default:
				return err
			}
			continue
		}
		logger.Info("removed part",
			zap.String("ipn", res.IPN), zap.String("table", res.Table))
	}
	if failed {
		return errors.New("some parts could not be removed")
	}
	return nil
}
