// Package config loads the apmm tool configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/spachava753/apmm/internal/scan"
)

// FileName is the config file name inside the apmm home directory.
const FileName = "config.yaml"

// ToolConfig represents the parsed config.yaml.
type ToolConfig struct {
	RegistryPath string     `yaml:"registry_path"`
	Username     string     `yaml:"username,omitempty"`
	LogLevel     string     `yaml:"log_level,omitempty"`
	Scan         ScanConfig `yaml:"scan"`
}

// ScanConfig controls project discovery during a full sync.
type ScanConfig struct {
	MaxDepth int      `yaml:"max_depth"`
	SkipDirs []string `yaml:"skip_dirs,omitempty"`
}

// Options converts the scan settings into scanner options. Configured skip
// directories extend the built-in deny list.
func (c ScanConfig) Options() scan.Options {
	opts := scan.DefaultOptions()
	if c.MaxDepth > 0 {
		opts.MaxDepth = c.MaxDepth
	}
	opts.SkipDirs = append(opts.SkipDirs, c.SkipDirs...)
	return opts
}

// HomeDir returns the apmm home directory: $APMM_HOME, else ~/.apmm.
func HomeDir() (string, error) {
	if dir := os.Getenv("APMM_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".apmm"), nil
}

// DefaultToolConfig returns a ToolConfig with default values for the given
// apmm home directory.
func DefaultToolConfig(home string) ToolConfig {
	return ToolConfig{
		RegistryPath: filepath.Join(home, "meta.toml"),
		LogLevel:     "warn",
		Scan: ScanConfig{
			MaxDepth: scan.DefaultMaxDepth,
		},
	}
}

// LoadToolConfig loads config.yaml from path. A missing file yields the
// defaults.
func LoadToolConfig(path, home string) (ToolConfig, error) {
	cfg := DefaultToolConfig(home)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading tool config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing tool config: %w", err)
	}

	if cfg.Scan.MaxDepth < 0 {
		return cfg, fmt.Errorf("scan.max_depth must not be negative, got %d", cfg.Scan.MaxDepth)
	}

	// Apply defaults for missing values
	defaults := DefaultToolConfig(home)
	if cfg.RegistryPath == "" {
		cfg.RegistryPath = defaults.RegistryPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.Scan.MaxDepth == 0 {
		cfg.Scan.MaxDepth = defaults.Scan.MaxDepth
	}

	return cfg, nil
}
