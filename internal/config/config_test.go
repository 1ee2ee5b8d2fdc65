// ABOUTME: Tests for config defaults, ~ expansion, and load/save round trip.
// ABOUTME: Uses XDG_CONFIG_HOME redirection so tests never touch real config.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rsharman/hk2tcx/internal/routes"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if cfg.GetOutputDir() != "" {
		t.Errorf("GetOutputDir = %q, want empty", cfg.GetOutputDir())
	}
	if cfg.GetTolerance() != routes.DefaultTolerance {
		t.Errorf("GetTolerance = %v, want %v", cfg.GetTolerance(), routes.DefaultTolerance)
	}
	if cfg.GetWorkers() != 4 {
		t.Errorf("GetWorkers = %d, want 4", cfg.GetWorkers())
	}
}

func TestConfiguredValues(t *testing.T) {
	cfg := &Config{ToleranceMinutes: 10, Workers: 8}

	if cfg.GetTolerance() != 10*time.Minute {
		t.Errorf("GetTolerance = %v, want 10m", cfg.GetTolerance())
	}
	if cfg.GetWorkers() != 8 {
		t.Errorf("GetWorkers = %d, want 8", cfg.GetWorkers())
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	if got := ExpandPath("~/tcx"); got != filepath.Join(home, "tcx") {
		t.Errorf("ExpandPath(~/tcx) = %s", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath should leave absolute paths alone, got %s", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q, want empty", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputDir != "" || cfg.Workers != 0 {
		t.Error("missing config file should yield zero-value config")
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{OutputDir: "/tmp/tcx-out", ToleranceMinutes: 7, Workers: 2}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.OutputDir != cfg.OutputDir || got.ToleranceMinutes != 7 || got.Workers != 2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
