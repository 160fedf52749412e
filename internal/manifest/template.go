package manifest

import (
	"fmt"
	"strings"

	"github.com/spachava753/apmm/internal/models"
)

// FormatScalars renders the top-level fields of cfg in module.prop syntax.
// Values are written between double quotes without escaping, which is what
// the parser strips.
func FormatScalars(cfg models.ManifestConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "id = \"%s\"\n", cfg.ID)
	fmt.Fprintf(&b, "name = \"%s\"\n", cfg.Name)
	fmt.Fprintf(&b, "description = \"%s\"\n", cfg.Description)
	fmt.Fprintf(&b, "version = \"%s\"\n", cfg.Version)
	fmt.Fprintf(&b, "versionCode = %d\n", cfg.VersionCode)
	fmt.Fprintf(&b, "author = \"%s\"\n", cfg.Author)
	fmt.Fprintf(&b, "license = \"%s\"\n", cfg.License)
	return b.String()
}

// moduleBody follows the scalar header of a fresh module.prop.
const moduleBody = `# updateJson = ""

[script]
# hello = "echo 'world'"

[build]
[build.module]
# extra = ["Path/to/extra/file1", "Path/to/extra/file2"]
exclude = ["src", "rust", ".*", "uv.lock", "dist", "build"]

[build.src]
# extra = ["src/extra1", "src/extra2"]
exclude = ["src", "rust", ".*", "uv.lock", "dist", "build"]

[[build.prebuild]]
step1 = "echo 'Prebuild step 1: Initializing APMM'"
[[build.prebuild]]
step2 = "echo 'Prebuild step 2: Checking dependencies'"

[[build.build]]
# leave empty to use the default apmm packaging

[[build.postbuild]]
step1 = "echo 'Postbuild step 1: cleaning up APMM build'"
[[build.postbuild]]
step2 = "echo 'Postbuild step 2: Finalizing APMM build'"

[build.system]
requires = ["apmm>=0.3.0"]
build-backend = "apmm"

[github]
# repo = ""
# path = "."
# branch = "main"
`

// ModuleProp returns the module.prop written for a new project.
func ModuleProp(id, author string, versionCode int64) string {
	cfg := models.DefaultManifestConfig()
	cfg.ID = id
	cfg.Name = id
	cfg.Description = "APMM (Android Patch Module Manager)"
	cfg.Version = "v0.1.0"
	cfg.VersionCode = versionCode
	cfg.Author = author
	return FormatScalars(cfg) + moduleBody
}
