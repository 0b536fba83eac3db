package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{
		Database: DatabaseConfig{Path: "/tmp/parts.db"},
		Digikey: DigikeyConfig{
			ClientID:     "id123",
			ClientSecret: "secret456",
			CacheDir:     "/tmp/dkcache",
		},
	}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "config.yaml")
	require.NoError(t, Save(path, &Config{}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("PARTDB_DATABASE overrides file path", func(t *testing.T) {
		t.Setenv("PARTDB_DATABASE", "/env/parts.db")

		cfg := &Config{Database: DatabaseConfig{Path: "/file/parts.db"}}
		cfg.applyEnvOverrides()

		assert.Equal(t, "/env/parts.db", cfg.Database.Path)
	})

	t.Run("DIGIKEY credentials from environment", func(t *testing.T) {
		t.Setenv("DIGIKEY_CLIENT_ID", "env-id")
		t.Setenv("DIGIKEY_CLIENT_SECRET", "env-secret")

		cfg := &Config{
			Digikey: DigikeyConfig{ClientID: "file-id", ClientSecret: "file-secret"},
		}
		cfg.applyEnvOverrides()

		assert.Equal(t, "env-id", cfg.Digikey.ClientID)
		assert.Equal(t, "env-secret", cfg.Digikey.ClientSecret)
	})

	t.Run("empty environment leaves file values alone", func(t *testing.T) {
		t.Setenv("PARTDB_DATABASE", "")
		t.Setenv("DIGIKEY_CLIENT_ID", "")

		cfg := &Config{
			Database: DatabaseConfig{Path: "/file/parts.db"},
			Digikey:  DigikeyConfig{ClientID: "file-id"},
		}
		cfg.applyEnvOverrides()

		assert.Equal(t, "/file/parts.db", cfg.Database.Path)
		assert.Equal(t, "file-id", cfg.Digikey.ClientID)
	})
}

func TestDefaultPath(t *testing.T) {
	t.Run("PARTDB_CONFIG wins", func(t *testing.T) {
		t.Setenv("PARTDB_CONFIG", "/custom/config.yaml")

		path, err := DefaultPath()
		require.NoError(t, err)
		assert.Equal(t, "/custom/config.yaml", path)
	})

	t.Run("falls back to home directory", func(t *testing.T) {
		t.Setenv("PARTDB_CONFIG", "")
		home := t.TempDir()
		t.Setenv("HOME", home)

		path, err := DefaultPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".partdb", "config.yaml"), path)
	})
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "parts.db"), ExpandHome("~/parts.db"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/parts.db", ExpandHome("/abs/parts.db"))
	assert.Equal(t, "~user/parts.db", ExpandHome("~user/parts.db"))
}

func TestDatabasePath(t *testing.T) {
	t.Run("empty stays empty", func(t *testing.T) {
		cfg := &Config{}
		path, err := cfg.DatabasePath()
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("tilde expanded and absolute", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		cfg := &Config{Database: DatabaseConfig{Path: "~/parts.db"}}
		path, err := cfg.DatabasePath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "parts.db"), path)
	})
}

func TestCachePath(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "/fallback", cfg.CachePath("/fallback"))

	cfg.Digikey.CacheDir = "/configured"
	assert.Equal(t, "/configured", cfg.CachePath("/fallback"))
}
