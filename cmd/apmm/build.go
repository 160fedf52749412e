package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spachava753/apmm/internal/manifest"
	"github.com/spachava753/apmm/internal/models"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Show the build pipeline declared in module.prop",
		Long: `Show the build pipeline declared in module.prop.

Steps are listed per phase in declaration order. They are not executed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := manifest.Load(os.DirFS("."))
			if err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func printPlan(w io.Writer, cfg models.ManifestConfig) {
	fmt.Fprintf(w, "Module: %s %s\n", cfg.Name, cfg.Version)
	fmt.Fprintf(w, "Description: %s\n", cfg.Description)

	printPhase(w, "prebuild", cfg.Build.Prebuild)
	if len(cfg.Build.Build) == 0 {
		fmt.Fprintf(w, "build:\n  default packaging (build backend: %s)\n", cfg.Build.BuildBackend)
	} else {
		printPhase(w, "build", cfg.Build.Build)
	}
	printPhase(w, "postbuild", cfg.Build.Postbuild)

	if len(cfg.Build.SystemRequires) > 0 {
		fmt.Fprintf(w, "System requirements: %s\n", strings.Join(cfg.Build.SystemRequires, ", "))
	}
}

func printPhase(w io.Writer, name string, steps []models.BuildStep) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", name)
	for _, s := range steps {
		fmt.Fprintf(w, "  %s: %s\n", s.Name, s.Command)
	}
}
