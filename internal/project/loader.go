// Package project recognizes and loads apmm project directories.
package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spachava753/apmm/internal/manifest"
	"github.com/spachava753/apmm/internal/models"
)

// MarkerDir is the hidden directory that marks a project root.
const MarkerDir = ".apmm"

// CommitCounter returns the commit count of the checkout at dir, or false if
// dir is not a checkout or the count is unavailable.
type CommitCounter func(ctx context.Context, dir string) (int, bool)

// Loader loads projects from the filesystem.
type Loader struct{}

// NewLoader creates a new project loader.
func NewLoader() *Loader {
	return &Loader{}
}

// IsProject reports whether fsys holds both the marker directory and the
// manifest at its root.
func IsProject(fsys fs.FS) bool {
	if _, err := fs.Stat(fsys, MarkerDir); err != nil {
		return false
	}
	if _, err := fs.Stat(fsys, manifest.FileName); err != nil {
		return false
	}
	return true
}

// LoadProject loads the project rooted at projectPath.
func (l *Loader) LoadProject(ctx context.Context, projectPath string) (*models.Project, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	fsys := os.DirFS(absPath)
	if err := l.validate(fsys); err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}

	data, err := fs.ReadFile(fsys, manifest.FileName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", manifest.FileName, err)
	}

	cfg, md := manifest.Decode(string(data))
	if !md.IsDefined("id") || cfg.ID == "" {
		return nil, fmt.Errorf("%s: %w", absPath, models.ErrIDNotFound)
	}

	return &models.Project{
		ID:       cfg.ID,
		Path:     absPath,
		FS:       fsys,
		Manifest: cfg,
	}, nil
}

// ValidateProject checks that the project still has its marker directory and
// manifest.
func (l *Loader) ValidateProject(p *models.Project) error {
	return l.validate(p.FS)
}

func (l *Loader) validate(fsys fs.FS) error {
	if _, err := fs.Stat(fsys, MarkerDir); err != nil {
		return fmt.Errorf("%w: %s directory not found", models.ErrNotAProject, MarkerDir)
	}
	if _, err := fs.Stat(fsys, manifest.FileName); err != nil {
		return fmt.Errorf("%w: %s not found", models.ErrNotAProject, manifest.FileName)
	}
	return nil
}

// Classify checks a registry entry against the filesystem. For an id
// mismatch the id declared by the manifest is returned as well.
//
// A project whose manifest cannot be read or has no id is reported valid:
// the entry may still be right and only the manifest needs fixing.
func (l *Loader) Classify(id, projectPath string) (models.ProjectStatus, string) {
	if _, err := os.Stat(projectPath); err != nil {
		return models.StatusPathMissing, ""
	}

	fsys := os.DirFS(projectPath)
	if !IsProject(fsys) {
		return models.StatusNotAProject, ""
	}

	data, err := fs.ReadFile(fsys, manifest.FileName)
	if err != nil {
		slog.Warn("cannot read manifest, keeping registration", "id", id, "path", projectPath, "error", err)
		return models.StatusValid, ""
	}

	declared, err := manifest.ExtractID(string(data))
	if err != nil {
		slog.Warn("manifest has no id, keeping registration", "id", id, "path", projectPath)
		return models.StatusValid, ""
	}

	if declared != id {
		return models.StatusIDMismatch, declared
	}
	return models.StatusValid, ""
}

// GitCommitCount returns the number of commits reachable from HEAD when dir
// is the root of a git checkout. Any failure means no information.
func GitCommitCount(ctx context.Context, dir string) (int, bool) {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return 0, false
	}

	cmd := exec.CommandContext(ctx, "git", "rev-list", "--count", "HEAD")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			slog.Debug("git rev-list failed", "dir", dir, "stderr", strings.TrimSpace(string(exitErr.Stderr)))
		} else {
			slog.Debug("git rev-list failed", "dir", dir, "error", err)
		}
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, false
	}
	return n, true
}
