package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PROOFPAL_DATA_DIR", "")
	t.Setenv("PROOFPAL_DB", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir == "" {
		t.Fatal("expected a default data dir")
	}
	if cfg.DatabasePath != filepath.Join(cfg.DataDir, "proofpal.db") {
		t.Errorf("database path = %s, want it under the data dir", cfg.DatabasePath)
	}
	if cfg.FilesDir() != filepath.Join(cfg.DataDir, "files") {
		t.Errorf("files dir = %s, want it under the data dir", cfg.FilesDir())
	}
	if cfg.SettingsPath() != filepath.Join(cfg.DataDir, "settings.json") {
		t.Errorf("settings path = %s, want it under the data dir", cfg.SettingsPath())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROOFPAL_DATA_DIR", dir)
	t.Setenv("PROOFPAL_DB", filepath.Join(dir, "custom.db"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != dir {
		t.Errorf("data dir = %s, want %s", cfg.DataDir, dir)
	}
	if cfg.DatabasePath != filepath.Join(dir, "custom.db") {
		t.Errorf("database path = %s, want the override", cfg.DatabasePath)
	}
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROOFPAL_DATA_DIR", filepath.Join(dir, "nested"))
	t.Setenv("PROOFPAL_DB", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs: %v", err)
	}
}
