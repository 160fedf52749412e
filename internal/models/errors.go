package models

import "errors"

var (
	// ErrNotAProject means a directory lacks the .apmm marker or module.prop.
	ErrNotAProject = errors.New("not an apmm project")

	// ErrIDNotFound means module.prop has no usable top-level id.
	ErrIDNotFound = errors.New("module id not found in module.prop")

	// ErrInvalidVersion means a version string is not X.Y.Z with numeric parts.
	ErrInvalidVersion = errors.New("invalid version format, expected X.Y.Z")
)
