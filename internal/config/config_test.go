package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spachava753/apmm/internal/config"
)

func TestLoadToolConfig(t *testing.T) {
	configYaml := `registry_path: /data/apmm/meta.toml
username: someone
log_level: debug
scan:
  max_depth: 5
  skip_dirs:
    - dist
    - out
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(tmpFile, []byte(configYaml), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	cfg, err := config.LoadToolConfig(tmpFile, tmpDir)
	if err != nil {
		t.Fatalf("LoadToolConfig failed: %v", err)
	}

	if cfg.RegistryPath != "/data/apmm/meta.toml" {
		t.Errorf("expected registry_path /data/apmm/meta.toml, got %s", cfg.RegistryPath)
	}
	if cfg.Username != "someone" {
		t.Errorf("expected username someone, got %s", cfg.Username)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log_level debug, got %s", cfg.LogLevel)
	}

	opts := cfg.Scan.Options()
	if opts.MaxDepth != 5 {
		t.Errorf("expected max_depth 5, got %d", opts.MaxDepth)
	}
	want := []string{"node_modules", "target", "build", "dist", "out"}
	if len(opts.SkipDirs) != len(want) {
		t.Fatalf("expected skip dirs %v, got %v", want, opts.SkipDirs)
	}
	for i := range want {
		if opts.SkipDirs[i] != want[i] {
			t.Errorf("skip_dirs[%d] = %s, want %s", i, opts.SkipDirs[i], want[i])
		}
	}
}

func TestLoadToolConfig_Missing(t *testing.T) {
	home := t.TempDir()
	cfg, err := config.LoadToolConfig(filepath.Join(home, "config.yaml"), home)
	if err != nil {
		t.Fatalf("expected defaults for missing config, got %v", err)
	}

	if cfg.RegistryPath != filepath.Join(home, "meta.toml") {
		t.Errorf("expected default registry path, got %s", cfg.RegistryPath)
	}
	if cfg.Scan.MaxDepth != 3 {
		t.Errorf("expected default max_depth 3, got %d", cfg.Scan.MaxDepth)
	}
}

func TestLoadToolConfig_PartialAppliesDefaults(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	if err := os.WriteFile(path, []byte("username: only-me\n"), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	cfg, err := config.LoadToolConfig(path, home)
	if err != nil {
		t.Fatalf("LoadToolConfig failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected default log_level warn, got %s", cfg.LogLevel)
	}
	if cfg.RegistryPath != filepath.Join(home, "meta.toml") {
		t.Errorf("expected default registry path, got %s", cfg.RegistryPath)
	}
}

func TestLoadToolConfig_Invalid(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")

	for name, body := range map[string]string{
		"bad yaml":       "scan: [unclosed\n",
		"negative depth": "scan:\n  max_depth: -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(body), 0644); err != nil {
				t.Fatalf("writing temp file: %v", err)
			}
			if _, err := config.LoadToolConfig(path, home); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestHomeDir(t *testing.T) {
	t.Setenv("APMM_HOME", "/custom/apmm")
	dir, err := config.HomeDir()
	if err != nil {
		t.Fatalf("HomeDir failed: %v", err)
	}
	if dir != "/custom/apmm" {
		t.Errorf("expected /custom/apmm, got %s", dir)
	}
}
