package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spachava753/apmm/internal/config"
	"github.com/spachava753/apmm/internal/registry"
)

// app holds state shared by subcommands once the root command has loaded
// the configuration.
type app struct {
	cfgFile string
	cfg     config.ToolConfig
	v       *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "apmm",
		Short:         "Android patch module manager",
		Long:          `apmm scaffolds patch module projects, keeps a registry of them and bumps their versions.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: $APMM_HOME/config.yaml)")
	rootCmd.PersistentFlags().String("registry", "",
		"registry file (default: $APMM_HOME/meta.toml)")
	rootCmd.PersistentFlags().String("log-level", "",
		"log level: debug, info, warn, error")

	_ = a.v.BindPFlag("registry", rootCmd.PersistentFlags().Lookup("registry"))
	_ = a.v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	a.v.SetEnvPrefix("APMM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(
		newSyncCmd(a),
		newInfoCmd(),
		newBuildCmd(),
		newInitCmd(a),
		newListCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig reads config.yaml, then applies APMM_* environment variables and
// flags on top.
func (a *app) loadConfig() error {
	home, err := config.HomeDir()
	if err != nil {
		return err
	}

	path := a.cfgFile
	if path == "" {
		path = filepath.Join(home, config.FileName)
	}

	cfg, err := config.LoadToolConfig(path, home)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if reg := a.v.GetString("registry"); reg != "" {
		cfg.RegistryPath = reg
	}
	if level := a.v.GetString("log_level"); level != "" {
		cfg.LogLevel = level
	}

	if err := setupLogger(cfg.LogLevel); err != nil {
		return err
	}

	a.cfg = cfg
	slog.Debug("configuration loaded", "config", path, "registry", cfg.RegistryPath)
	return nil
}

func (a *app) store() *registry.FileStore {
	return registry.NewFileStore(a.cfg.RegistryPath)
}

func (a *app) synchronizer() *registry.Synchronizer {
	return registry.NewSynchronizer(a.store(), registry.Options{
		Scan: a.cfg.Scan.Options(),
	})
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}
