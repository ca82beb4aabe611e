// Package config resolves where the application keeps its state. Paths
// default under the user's config directory and can be overridden through
// the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the resolved application paths.
type Config struct {
	// DataDir is the root directory for the database, the file archive
	// and the preferences file.
	DataDir string `env:"PROOFPAL_DATA_DIR"`
	// DatabasePath overrides the database location.
	DatabasePath string `env:"PROOFPAL_DB"`
	// LogPath, when set, mirrors all log output to a file.
	LogPath string `env:"PROOFPAL_LOG"`
}

// Load parses the environment and fills in platform defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.DataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config directory: %w", err)
		}
		cfg.DataDir = filepath.Join(base, "proofpal")
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.DataDir, "proofpal.db")
	}

	return cfg, nil
}

// FilesDir is the root of the content-addressed attachment archive.
func (c *Config) FilesDir() string {
	return filepath.Join(c.DataDir, "files")
}

// SettingsPath is the user preferences file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, "settings.json")
}

// EnsureDirs creates the data directories if missing.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.FilesDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
