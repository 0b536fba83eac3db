package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"partdb/internal/config"
	"partdb/internal/store"
)

// initCmd creates a config file and/or a new empty database.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file and an empty part database",
	Long: `Writes a config file recording the database location, and creates a
new empty database file when --database is given.

Examples:
  partdb init --config ~/.partdb/config.yaml --database ~/parts.db
  partdb init --database parts.db`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if configPath == "" && dbPath == "" {
		return fmt.Errorf("nothing to initialize; pass --config and/or --database")
	}

	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg := &config.Config{}
	if existing, err := config.Load(path); err == nil {
		cfg = existing
	}
	cfg.Database.Path = dbPath
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	logger.Info("wrote config file", zap.String("path", path))

	if dbPath != "" {
		if err := store.Initialize(dbPath); err != nil {
			return err
		}
		logger.Info("initialized database", zap.String("path", dbPath))
	}
	return nil
}
