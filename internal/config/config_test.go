package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/tuitioncast/internal/source"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if Exists() {
		t.Fatal("Exists() = true before any save")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DataDir = "/srv/tuition"
	cfg.Regression.Seed = 7
	cfg.Regression.TestSize = 0.25
	cfg.Appearance.Theme = "catppuccin-mocha"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after save")
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "tuitioncast", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[regression]\nseed = 99\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Regression.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Regression.Seed)
	}
	if cfg.Regression.BaseYear != 2000 || cfg.General.OverallFile != "overall_tuition.csv" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsBadTestSize(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "tuitioncast", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[regression]\ntest_size = 1.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted test_size = 1.5")
	}
}

func TestDatasetPaths(t *testing.T) {
	t.Setenv(DataDirEnv, "")
	cfg := DefaultConfig()
	cfg.General.GraduateFile = "/abs/grad.csv"

	dir := ResolveDataDir(cfg, "")
	if dir != "archive" {
		t.Fatalf("ResolveDataDir = %q, want archive", dir)
	}
	t.Setenv(DataDirEnv, "/env")
	if got := ResolveDataDir(cfg, ""); got != "/env" {
		t.Errorf("env override = %q, want /env", got)
	}
	if got := ResolveDataDir(cfg, "/flag"); got != "/flag" {
		t.Errorf("flag override = %q, want /flag", got)
	}

	paths := DatasetPaths(cfg, "/data")
	if paths[source.KindOverall] != filepath.Join("/data", "overall_tuition.csv") {
		t.Errorf("overall path = %q", paths[source.KindOverall])
	}
	if paths[source.KindGraduate] != "/abs/grad.csv" {
		t.Errorf("graduate path = %q, want absolute name kept", paths[source.KindGraduate])
	}
}
