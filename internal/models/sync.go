package models

// SyncResult summarizes a synchronization run.
type SyncResult struct {
	Valid     int             `json:"valid"`
	Added     int             `json:"added"`
	Removed   int             `json:"removed"`
	Total     int             `json:"total"`
	Conflicts []Conflict      `json:"conflicts,omitempty"`
	Entries   []EntryStatus   `json:"entries,omitempty"`
	Upgrade   *VersionUpgrade `json:"upgrade,omitempty"`
}

// EntryStatus records how a registry entry was classified.
type EntryStatus struct {
	ID       string        `json:"id"`
	Path     string        `json:"path"`
	Status   ProjectStatus `json:"status"`
	Declared string        `json:"declared,omitempty"` // manifest id when Status is id_mismatch
}

// Conflict is a discovered project whose id is already registered under a
// different path. The existing registration is kept.
type Conflict struct {
	ID           string `json:"id"`
	ExistingPath string `json:"existing_path"`
	FoundPath    string `json:"found_path"`
}

// VersionUpgrade describes the edits made to module.prop by a version bump.
type VersionUpgrade struct {
	OldVersion      string `json:"old_version"`
	NewVersion      string `json:"new_version"`
	VersionCode     int64  `json:"version_code"`
	VersionReplaced bool   `json:"version_replaced"`
	CodeReplaced    bool   `json:"code_replaced"`
}
