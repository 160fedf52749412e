package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.store().Load()
			if err != nil {
				return fmt.Errorf("loading registry: %w", err)
			}

			out := cmd.OutOrStdout()
			if reg.Len() == 0 {
				fmt.Fprintln(out, "No projects registered")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPATH")
			for _, id := range reg.IDs() {
				path, _ := reg.Get(id)
				fmt.Fprintf(tw, "%s\t%s\n", id, path)
			}
			return tw.Flush()
		},
	}
}
