package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/spachava753/apmm/internal/manifest"
	"github.com/spachava753/apmm/internal/project"
	"github.com/spachava753/apmm/internal/util"
)

const defaultAuthor = "APMM Team"

func newInitCmd(a *app) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a new module project",
		Long: `Create a new module project in path (default: the current directory).

The module id defaults to the directory name. Names that are not valid ids are
sanitized: lowercased, with separators turned into underscores.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			dir, err := filepath.Abs(target)
			if err != nil {
				return fmt.Errorf("getting absolute path: %w", err)
			}

			if id == "" {
				id = moduleIDFor(dir)
			} else if err := util.ValidateModuleID(id); err != nil {
				return err
			}

			if err := a.initProject(cmd, dir, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized module %s in %s\n", id, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "module id (default: derived from the directory name)")
	return cmd
}

func (a *app) initProject(cmd *cobra.Command, dir, id string) error {
	marker := filepath.Join(dir, project.MarkerDir)
	if _, err := os.Stat(marker); err == nil {
		return fmt.Errorf("%s already contains an apmm project", dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", marker, err)
	}

	author, err := a.author()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(marker, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", marker, err)
	}

	body := manifest.ModuleProp(id, author, util.VersionCode(time.Now()))
	propPath := filepath.Join(dir, manifest.FileName)
	if err := os.WriteFile(propPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", propPath, err)
	}
	slog.Debug("wrote manifest", "path", propPath)

	return a.synchronizer().Register(cmd.Context(), id, dir)
}

// author picks the registry username, then the configured username.
func (a *app) author() (string, error) {
	reg, err := a.store().Load()
	if err != nil {
		return "", fmt.Errorf("loading registry: %w", err)
	}
	switch {
	case reg.Username != "":
		return reg.Username, nil
	case a.cfg.Username != "":
		return a.cfg.Username, nil
	default:
		return defaultAuthor, nil
	}
}

func moduleIDFor(dir string) string {
	name := filepath.Base(dir)
	if util.ValidateModuleID(name) == nil {
		return name
	}
	id := util.SanitizeModuleID(name)
	slog.Info("sanitized module id", "directory", name, "id", id)
	return id
}
