// Package scan discovers apmm projects below a directory.
//
// The walk runs over an fs.FS so tests can hand it an in-memory tree. It is
// a bounded-depth, depth-first recursion that skips hidden directories and a
// deny-list of build output and dependency cache names.
package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/spachava753/apmm/internal/manifest"
	"github.com/spachava753/apmm/internal/project"
)

// DefaultMaxDepth bounds the walk to this many path components below the
// start directory.
const DefaultMaxDepth = 3

// DefaultSkipDirs are directory names never descended into.
var DefaultSkipDirs = []string{"node_modules", "target", "build"}

// Options configures a Scanner.
type Options struct {
	MaxDepth int
	SkipDirs []string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxDepth: DefaultMaxDepth,
		SkipDirs: append([]string(nil), DefaultSkipDirs...),
	}
}

// Candidate is a discovered project.
type Candidate struct {
	ID  string
	Dir string // slash-separated path relative to the scan root, "." for the root
}

// Scanner walks a directory tree looking for projects.
type Scanner struct {
	maxDepth int
	skip     map[string]bool
}

// NewScanner creates a Scanner. A non-positive MaxDepth means DefaultMaxDepth.
func NewScanner(opts Options) *Scanner {
	depth := opts.MaxDepth
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	skip := make(map[string]bool, len(opts.SkipDirs))
	for _, name := range opts.SkipDirs {
		skip[name] = true
	}
	return &Scanner{maxDepth: depth, skip: skip}
}

// Scan walks fsys from its root and returns the projects found, in walk
// order. Directories that cannot be listed are skipped; a manifest that
// exists but cannot be read aborts the scan. Projects without a declared id
// are not candidates.
func (s *Scanner) Scan(fsys fs.FS) ([]Candidate, error) {
	var found []Candidate
	if err := s.visit(fsys, ".", 0, &found); err != nil {
		return nil, err
	}
	return found, nil
}

func (s *Scanner) visit(fsys fs.FS, dir string, depth int, found *[]Candidate) error {
	if sub, err := fs.Sub(fsys, dir); err == nil && project.IsProject(sub) {
		manifestPath := path.Join(dir, manifest.FileName)
		data, err := fs.ReadFile(fsys, manifestPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", manifestPath, err)
		}
		if id, err := manifest.ExtractID(string(data)); err == nil {
			*found = append(*found, Candidate{ID: id, Dir: dir})
		} else {
			slog.Debug("skipping project without id", "dir", dir)
		}
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		slog.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if s.skipped(name) {
			continue
		}
		child := path.Join(dir, name)
		if !isDir(fsys, child, entry) {
			continue
		}
		if depth+1 > s.maxDepth {
			continue
		}
		if err := s.visit(fsys, child, depth+1, found); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) skipped(name string) bool {
	return strings.HasPrefix(name, ".") || s.skip[name]
}

// isDir follows symlinks so linked project directories are found too.
func isDir(fsys fs.FS, name string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}
