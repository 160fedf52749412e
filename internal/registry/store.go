// Package registry persists the module id to project path mapping and
// reconciles it with the filesystem.
package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/spachava753/apmm/internal/models"
)

// FileName is the registry file name inside the apmm home directory.
const FileName = "meta.toml"

// Store loads and saves the registry.
type Store interface {
	Load() (*models.Registry, error)
	Save(reg *models.Registry) error
}

// FileStore keeps the registry in a TOML file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the registry file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the registry. A missing file yields an empty registry.
func (s *FileStore) Load() (*models.Registry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("registry file not found, starting empty", "path", s.path)
		return models.NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading registry file: %w", err)
	}

	reg := models.NewRegistry()
	if _, err := toml.Decode(string(data), reg); err != nil {
		return nil, fmt.Errorf("parsing registry TOML: %w", err)
	}
	if reg.Projects == nil {
		reg.Projects = make(map[string]string)
	}
	return reg, nil
}

// Save writes the registry, creating the parent directory if needed.
func (s *FileStore) Save(reg *models.Registry) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(reg); err != nil {
		return fmt.Errorf("encoding registry TOML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating registry directory: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing registry file: %w", err)
	}

	slog.Debug("registry saved", "path", s.path, "projects", reg.Len())
	return nil
}

// MemoryStore keeps the registry in memory.
type MemoryStore struct {
	mu    sync.Mutex
	reg   *models.Registry
	saves int
}

// NewMemoryStore creates a MemoryStore seeded with projects.
func NewMemoryStore(projects map[string]string) *MemoryStore {
	reg := models.NewRegistry()
	for id, path := range projects {
		reg.Set(id, path)
	}
	return &MemoryStore{reg: reg}
}

// Load returns a copy of the stored registry.
func (s *MemoryStore) Load() (*models.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRegistry(s.reg), nil
}

// Save replaces the stored registry with a copy of reg.
func (s *MemoryStore) Save(reg *models.Registry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg = cloneRegistry(reg)
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func cloneRegistry(reg *models.Registry) *models.Registry {
	out := models.NewRegistry()
	out.Username = reg.Username
	for id, path := range reg.Projects {
		out.Projects[id] = path
	}
	return out
}
