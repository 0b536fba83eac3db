// Command partdb manages a KiCad part database: an sqlite database with
// one table per component type, populated from Digikey lookups or CSV
// files.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"partdb/internal/config"
	"partdb/internal/store"
)

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "partdb",
	Short: "partdb - KiCad part database utility",
	Long: `partdb manages a database of electronic components for use with KiCad.

Parts are stored in an sqlite database with one table per component type
(resistor, capacitor, diode, ...). Parts can be added from Digikey part
numbers or from CSV files, and the database can be dumped as a table or
as CSV for use as a KiCad database library.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zc := zap.NewProductionConfig()
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
}

// loadConfig reads the config file named by --config (or the default
// location). A missing file is not an error when the database path is
// given on the command line; an empty config is returned instead.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) && dbPath != "" {
			return &config.Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// databasePath resolves the database location: the --database flag wins,
// then the config file.
func databasePath(cfg *config.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	path, err := cfg.DatabasePath()
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("no database path configured; " +
			"pass --database or set database.path in the config file")
	}
	return path, nil
}

// openStore resolves the database path and opens it.
func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path, err := databasePath(cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(path, logger)
}

// defaultCacheDir is where Digikey API responses are cached when the
// config does not name a directory.
func defaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".partdb", "digikey_cache"), nil
}

// stdinPrompter asks the user for a value on the terminal. Used when a
// part needs a symbol or footprint that cannot be determined
// automatically.
func stdinPrompter(prompt string) string {
	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default: ~/.partdb/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "database", "",
		"Database file path (overrides the config file)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
