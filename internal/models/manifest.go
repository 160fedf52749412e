package models

// Defaults applied when a field is absent from module.prop.
const (
	DefaultID           = "unknown"
	DefaultName         = "Unknown"
	DefaultDescription  = ""
	DefaultVersion      = "0.1.0"
	DefaultVersionCode  = int64(1)
	DefaultAuthor       = "Unknown"
	DefaultLicense      = "MIT"
	DefaultBuildBackend = "apmm"
)

// BuildStep is one named command inside a build phase.
type BuildStep struct {
	Name    string
	Command string
}

// BuildConfig describes the build pipeline declared in module.prop.
// Steps keep document order within each phase.
type BuildConfig struct {
	Prebuild       []BuildStep
	Build          []BuildStep
	Postbuild      []BuildStep
	SystemRequires []string
	BuildBackend   string // default: "apmm"
}

// ManifestConfig represents the parsed module.prop.
type ManifestConfig struct {
	ID          string
	Name        string
	Description string
	Version     string
	VersionCode int64
	Author      string
	License     string
	Build       BuildConfig
}

// DefaultManifestConfig returns a ManifestConfig with default values.
func DefaultManifestConfig() ManifestConfig {
	return ManifestConfig{
		ID:          DefaultID,
		Name:        DefaultName,
		Description: DefaultDescription,
		Version:     DefaultVersion,
		VersionCode: DefaultVersionCode,
		Author:      DefaultAuthor,
		License:     DefaultLicense,
		Build: BuildConfig{
			BuildBackend: DefaultBuildBackend,
		},
	}
}
