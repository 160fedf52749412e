package models

import "sort"

// Registry maps module ids to absolute project paths. It is persisted as
// meta.toml in the apmm home directory.
type Registry struct {
	Username string            `toml:"username"`
	Projects map[string]string `toml:"projects"`
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{Projects: make(map[string]string)}
}

// Get returns the path registered for id.
func (r *Registry) Get(id string) (string, bool) {
	path, ok := r.Projects[id]
	return path, ok
}

// Set registers path under id, replacing any previous entry.
func (r *Registry) Set(id, path string) {
	if r.Projects == nil {
		r.Projects = make(map[string]string)
	}
	r.Projects[id] = path
}

// Remove deletes id. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	delete(r.Projects, id)
}

// Len returns the number of registered projects.
func (r *Registry) Len() int {
	return len(r.Projects)
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.Projects))
	for id := range r.Projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
