package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spachava753/apmm/internal/models"
)

func newSyncCmd(a *app) *cobra.Command {
	var upgrade, current bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the project registry with the filesystem",
		Long: `Reconcile the project registry with the filesystem.

Without flags, every registered project is checked: entries whose path is gone
or no longer holds a project are removed, entries whose module.prop declares a
different id are re-registered under that id, and projects found below the
current directory (up to three levels deep) are added.

With --upgrade (-U), only the project in the current directory is synced and
its version and versionCode are bumped in module.prop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			s := a.synchronizer()
			out := cmd.OutOrStdout()

			if upgrade || current {
				result, err := s.SyncCurrent(cmd.Context(), cwd, upgrade)
				if err != nil {
					return err
				}
				printCurrent(out, result)
				return nil
			}

			result, err := s.SyncAll(cmd.Context(), cwd)
			if err != nil {
				return err
			}
			printSummary(out, result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&upgrade, "upgrade", "U", false, "sync the current project and bump its version")
	cmd.Flags().BoolVar(&current, "current", false, "sync only the current project, without a version bump")
	return cmd
}

func printSummary(w io.Writer, r *models.SyncResult) {
	for _, e := range r.Entries {
		switch e.Status {
		case models.StatusValid:
			fmt.Fprintf(w, "valid     %s  %s\n", e.ID, e.Path)
		case models.StatusIDMismatch:
			fmt.Fprintf(w, "renamed   %s -> %s  %s\n", e.ID, e.Declared, e.Path)
		default:
			fmt.Fprintf(w, "removed   %s  %s (%s)\n", e.ID, e.Path, e.Status)
		}
	}
	for _, c := range r.Conflicts {
		fmt.Fprintf(w, "conflict  %s  kept %s, found %s\n", c.ID, c.ExistingPath, c.FoundPath)
	}

	fmt.Fprintf(w, "\nSynchronization completed:\n")
	fmt.Fprintf(w, "Valid projects: %d\n", r.Valid)
	fmt.Fprintf(w, "Added projects: %d\n", r.Added)
	fmt.Fprintf(w, "Removed projects: %d\n", r.Removed)
	fmt.Fprintf(w, "Total projects: %d\n", r.Total)
}

func printCurrent(w io.Writer, r *models.SyncResult) {
	if r.Added > 0 {
		fmt.Fprintln(w, "Registry updated")
	}
	if up := r.Upgrade; up != nil {
		if up.VersionReplaced {
			fmt.Fprintf(w, "Version: %s -> %s\n", up.OldVersion, up.NewVersion)
		}
		if up.CodeReplaced {
			fmt.Fprintf(w, "Version code: %d\n", up.VersionCode)
		}
	}
	fmt.Fprintf(w, "Total projects: %d\n", r.Total)
}
