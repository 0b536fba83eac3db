// Package config loads and saves the partdb configuration file: the part
// database location and Digikey API credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all partdb configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Digikey  DigikeyConfig  `yaml:"digikey"`
}

// DatabaseConfig locates the part database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DigikeyConfig configures the Digikey product API client.
type DigikeyConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	// CacheDir stores raw API responses; defaults to a directory next to
	// the config file when empty.
	CacheDir string `yaml:"cache_dir"`
}

// DefaultPath returns the config file path: $PARTDB_CONFIG when set,
// otherwise ~/.partdb/config.yaml.
func DefaultPath() (string, error) {
	if path := os.Getenv("PARTDB_CONFIG"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".partdb", "config.yaml"), nil
}

// Load reads the configuration from path and applies environment
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyEnvOverrides()
	return &cfg, nil
}

// Save writes the configuration to path, creating parent directories as
// needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides lets environment variables take precedence over the
// file, so credentials can stay out of the config on shared machines.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PARTDB_DATABASE"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("DIGIKEY_CLIENT_ID"); v != "" {
		c.Digikey.ClientID = v
	}
	if v := os.Getenv("DIGIKEY_CLIENT_SECRET"); v != "" {
		c.Digikey.ClientSecret = v
	}
}

// DatabasePath returns the configured database path with ~ expanded and
// made absolute. An empty configured path stays empty.
func (c *Config) DatabasePath() (string, error) {
	path := c.Database.Path
	if path == "" {
		return "", nil
	}
	path = ExpandHome(path)
	return filepath.Abs(path)
}

// CachePath returns the configured Digikey cache directory, or the given
// fallback when none is configured.
func (c *Config) CachePath(fallback string) string {
	if c.Digikey.CacheDir == "" {
		return fallback
	}
	return ExpandHome(c.Digikey.CacheDir)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}
	return path
}
