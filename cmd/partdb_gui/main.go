// Command partdb_gui is an interactive browser and editor for KiCad part
// databases.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"partdb/cmd/partdb_gui/ui"
	"partdb/internal/config"
)

var (
	configPath string
	dbPath     string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "partdb_gui",
	Short: "partdb_gui - interactive KiCad part database browser",
	Long: `partdb_gui opens a part database in an interactive terminal interface.

Parts can be browsed per table, filtered, and edited in place. The
database file is watched for changes, so parts added with partdb in
another terminal show up without restarting.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Log to a file: the terminal belongs to the interface.
		zc := zap.NewProductionConfig()
		zc.OutputPaths = []string{"partdb_gui.log"}
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	model := ui.NewModel(path, dbPath, logger)
	if model.DBPath == "" {
		return fmt.Errorf("no database path configured; " +
			"pass --database or set database.path in the config file")
	}

	watch, err := ui.NewWatcher(model.DBPath, logger)
	if err != nil {
		logger.Warn("database file watching disabled", zap.Error(err))
		watch = nil
	} else {
		defer watch.Close()
	}

	app := ui.NewApp(model, watch)
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default: ~/.partdb/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "database", "",
		"Database file path (overrides the config file)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
