package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spachava753/apmm/internal/manifest"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show module information from module.prop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := manifest.Load(os.DirFS("."))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Module information:")
			fmt.Fprintf(w, "  ID: %s\n", cfg.ID)
			fmt.Fprintf(w, "  Name: %s\n", cfg.Name)
			fmt.Fprintf(w, "  Description: %s\n", cfg.Description)
			fmt.Fprintf(w, "  Version: %s\n", cfg.Version)
			fmt.Fprintf(w, "  Version code: %d\n", cfg.VersionCode)
			fmt.Fprintf(w, "  Author: %s\n", cfg.Author)
			fmt.Fprintf(w, "  License: %s\n", cfg.License)
			return nil
		},
	}
}
