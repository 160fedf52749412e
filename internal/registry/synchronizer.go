package registry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spachava753/apmm/internal/manifest"
	"github.com/spachava753/apmm/internal/models"
	"github.com/spachava753/apmm/internal/project"
	"github.com/spachava753/apmm/internal/scan"
	"github.com/spachava753/apmm/internal/util"
)

// Options configures a Synchronizer. Zero values select the defaults.
type Options struct {
	Scan        scan.Options
	Now         func() time.Time      // clock for version codes; default time.Now
	CommitCount project.CommitCounter // default project.GitCommitCount
	Parallelism int                   // concurrent registry checks; default GOMAXPROCS
}

// Synchronizer reconciles the registry with projects on disk.
//
// The registry is loaded once per operation and saved once at the end.
// There is no locking: two processes syncing the same registry file race
// and the last writer wins.
type Synchronizer struct {
	store       Store
	loader      *project.Loader
	scanner     *scan.Scanner
	now         func() time.Time
	commitCount project.CommitCounter
	parallelism int
}

// NewSynchronizer creates a Synchronizer backed by store.
func NewSynchronizer(store Store, opts Options) *Synchronizer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CommitCount == nil {
		opts.CommitCount = project.GitCommitCount
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.GOMAXPROCS(0)
	}
	if opts.Scan.MaxDepth == 0 && opts.Scan.SkipDirs == nil {
		opts.Scan = scan.DefaultOptions()
	}

	return &Synchronizer{
		store:       store,
		loader:      project.NewLoader(),
		scanner:     scan.NewScanner(opts.Scan),
		now:         opts.Now,
		commitCount: opts.CommitCount,
		parallelism: opts.Parallelism,
	}
}

// SyncAll checks every registered project, drops stale entries, follows id
// changes declared by manifests and registers projects found below root.
//
// When a manifest declares a different id than its registry key, the
// manifest wins. When a discovered project reuses an id registered under
// another path, the existing registration wins and a conflict is reported.
func (s *Synchronizer) SyncAll(ctx context.Context, root string) (*models.SyncResult, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	reg, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}

	result := &models.SyncResult{}

	entries, err := s.classify(ctx, reg)
	if err != nil {
		return nil, err
	}
	result.Entries = entries

	var remove []string
	var readd []models.EntryStatus
	for _, e := range entries {
		switch e.Status {
		case models.StatusPathMissing:
			slog.Info("project path no longer exists", "id", e.ID, "path", e.Path)
			remove = append(remove, e.ID)
		case models.StatusNotAProject:
			slog.Info("path is not an apmm project", "id", e.ID, "path", e.Path)
			remove = append(remove, e.ID)
		case models.StatusIDMismatch:
			slog.Warn("manifest declares a different id, updating registration",
				"registered", e.ID, "declared", e.Declared, "path", e.Path)
			remove = append(remove, e.ID)
			readd = append(readd, e)
		default:
			slog.Debug("project is valid", "id", e.ID, "path", e.Path)
			result.Valid++
		}
	}

	for _, id := range remove {
		reg.Remove(id)
		result.Removed++
	}
	for _, e := range readd {
		reg.Set(e.Declared, e.Path)
		result.Added++
	}

	if err := s.discover(root, reg, result); err != nil {
		return nil, err
	}

	if err := s.store.Save(reg); err != nil {
		return nil, fmt.Errorf("saving registry: %w", err)
	}

	result.Total = reg.Len()
	slog.Debug("synchronization completed",
		"valid", result.Valid,
		"added", result.Added,
		"removed", result.Removed,
		"total", result.Total)
	return result, nil
}

// classify checks all registry entries against disk. Checks only read the
// filesystem, so they run concurrently; the registry itself is not touched.
func (s *Synchronizer) classify(ctx context.Context, reg *models.Registry) ([]models.EntryStatus, error) {
	ids := reg.IDs()
	entries := make([]models.EntryStatus, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, id := range ids {
		path := reg.Projects[id]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			status, declared := s.loader.Classify(id, path)
			entries[i] = models.EntryStatus{ID: id, Path: path, Status: status, Declared: declared}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("checking registered projects: %w", err)
	}
	return entries, nil
}

// discover registers projects found below root that are not yet known.
func (s *Synchronizer) discover(root string, reg *models.Registry, result *models.SyncResult) error {
	candidates, err := s.scanner.Scan(os.DirFS(root))
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	for _, c := range candidates {
		dir := filepath.Join(root, filepath.FromSlash(c.Dir))

		if existing, ok := reg.Get(c.ID); ok {
			if existing != dir {
				slog.Warn("duplicate module id, keeping existing registration",
					"id", c.ID, "existing", existing, "found", dir)
				result.Conflicts = append(result.Conflicts, models.Conflict{
					ID:           c.ID,
					ExistingPath: existing,
					FoundPath:    dir,
				})
			}
			continue
		}

		reg.Set(c.ID, dir)
		result.Added++
		slog.Info("added new project", "id", c.ID, "path", dir)
	}
	return nil
}

// SyncCurrent registers the project at dir under its declared id, pointing
// the registry at dir if it was missing or elsewhere. With upgrade set, the
// manifest's version and versionCode are bumped in place.
func (s *Synchronizer) SyncCurrent(ctx context.Context, dir string, upgrade bool) (*models.SyncResult, error) {
	p, err := s.loader.LoadProject(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("loading current project: %w", err)
	}

	reg, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}

	result := &models.SyncResult{}
	registered, ok := reg.Get(p.ID)
	changed := !ok || registered != p.Path
	if changed {
		reg.Set(p.ID, p.Path)
		result.Added++
		slog.Info("synced project registration", "id", p.ID, "path", p.Path, "previous", registered)
	} else {
		result.Valid++
	}

	if upgrade {
		up, err := s.upgrade(ctx, p)
		if err != nil {
			return nil, err
		}
		result.Upgrade = up
	}

	if err := s.loader.ValidateProject(p); err != nil {
		return nil, fmt.Errorf("validating project %s: %w", p.ID, err)
	}

	if changed {
		if err := s.store.Save(reg); err != nil {
			return nil, fmt.Errorf("saving registry: %w", err)
		}
	}

	result.Total = reg.Len()
	return result, nil
}

// upgrade bumps version and versionCode in the project's module.prop.
func (s *Synchronizer) upgrade(ctx context.Context, p *models.Project) (*models.VersionUpgrade, error) {
	propPath := filepath.Join(p.Path, manifest.FileName)

	info, err := os.Stat(propPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", manifest.FileName, err)
	}
	data, err := os.ReadFile(propPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", manifest.FileName, err)
	}

	commits, ok := s.commitCount(ctx, p.Path)
	if !ok {
		commits = 0
	} else {
		slog.Debug("using commit count as patch version", "id", p.ID, "commits", commits)
	}
	next := func(current string) (string, error) {
		return util.NextVersion(current, commits)
	}

	out, up, err := manifest.BumpVersion(string(data), next, util.VersionCode(s.now()))
	if err != nil {
		return nil, fmt.Errorf("upgrading %s: %w", p.ID, err)
	}

	if err := os.WriteFile(propPath, []byte(out), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", manifest.FileName, err)
	}

	slog.Info("version upgraded",
		"id", p.ID,
		"from", up.OldVersion,
		"to", up.NewVersion,
		"version_code", up.VersionCode)
	return &up, nil
}

// Register records id at path, replacing any previous registration.
func (s *Synchronizer) Register(ctx context.Context, id, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("getting absolute path: %w", err)
	}

	reg, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}
	reg.Set(id, absPath)

	if err := s.store.Save(reg); err != nil {
		return fmt.Errorf("saving registry: %w", err)
	}
	return nil
}
