// ABOUTME: hk2tcx configuration: output root, tolerance, worker defaults.
// ABOUTME: Stored as JSON under XDG config; flags override any file value.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rsharman/hk2tcx/internal/routes"
)

// Config stores converter defaults. Every field is optional; zero values fall
// back to built-in defaults.
type Config struct {
	// OutputDir overrides the default output root (export dir + /tcx_files).
	// Supports ~ expansion for home directory.
	OutputDir string `json:"output_dir,omitempty"`

	// ToleranceMinutes is the route-matching window in minutes.
	ToleranceMinutes int `json:"tolerance_minutes,omitempty"`

	// Workers bounds the conversion worker pool.
	Workers int `json:"workers,omitempty"`
}

// GetOutputDir returns the configured output root with ~ expanded, or "" if
// unset (the converter then defaults relative to the export directory).
func (c *Config) GetOutputDir() string {
	return ExpandPath(c.OutputDir)
}

// GetTolerance returns the configured matching window, defaulting to the
// resolver's built-in tolerance.
func (c *Config) GetTolerance() time.Duration {
	if c.ToleranceMinutes <= 0 {
		return routes.DefaultTolerance
	}
	return time.Duration(c.ToleranceMinutes) * time.Minute
}

// GetWorkers returns the configured pool size, defaulting to 4.
func (c *Config) GetWorkers() int {
	if c.Workers <= 0 {
		return 4
	}
	return c.Workers
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "hk2tcx", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
