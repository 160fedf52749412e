package models

import "io/fs"

// Project is a patch module checkout: a directory holding the .apmm marker
// and a module.prop manifest.
type Project struct {
	ID       string
	Path     string // absolute path to project directory
	FS       fs.FS  // filesystem rooted at project directory
	Manifest ManifestConfig
}

// ProjectStatus is the outcome of checking a registry entry against disk.
type ProjectStatus string

const (
	StatusValid       ProjectStatus = "valid"
	StatusPathMissing ProjectStatus = "path_missing"
	StatusNotAProject ProjectStatus = "not_a_project"
	StatusIDMismatch  ProjectStatus = "id_mismatch"
)
