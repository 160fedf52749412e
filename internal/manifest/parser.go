// Package manifest reads and rewrites module.prop documents.
//
// The format is a loose, hand-edited TOML dialect. Parsing is deliberately
// permissive: lines the scanner does not understand are dropped and defaults
// fill the gaps, so Parse never fails. Only reading the file can.
package manifest

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/spachava753/apmm/internal/models"
)

// FileName is the manifest file name inside a project directory.
const FileName = "module.prop"

// Array sections that carry build steps.
const (
	sectionPrebuild  = "build.prebuild"
	sectionBuild     = "build.build"
	sectionPostbuild = "build.postbuild"
	sectionSystem    = "build.system"
)

// MetaData reports which top-level keys were present in a decoded document.
type MetaData struct {
	defined map[string]bool
}

// IsDefined reports whether the top-level key appeared in the document.
func (md MetaData) IsDefined(key string) bool {
	return md.defined[key]
}

// Parse decodes text into a ManifestConfig. It never fails; absent or
// malformed fields take their defaults.
func Parse(text string) models.ManifestConfig {
	cfg, _ := Decode(text)
	return cfg
}

// Load reads module.prop from fsys and parses it.
func Load(fsys fs.FS) (models.ManifestConfig, error) {
	data, err := fs.ReadFile(fsys, FileName)
	if err != nil {
		return models.DefaultManifestConfig(), fmt.Errorf("reading %s: %w", FileName, err)
	}
	return Parse(string(data)), nil
}

// ExtractID returns the top-level id declared in text.
func ExtractID(text string) (string, error) {
	cfg, md := Decode(text)
	if !md.IsDefined("id") || cfg.ID == "" {
		return "", models.ErrIDNotFound
	}
	return cfg.ID, nil
}

// Decode parses text like Parse and also returns which top-level keys were
// set.
func Decode(text string) (models.ManifestConfig, MetaData) {
	cfg := models.DefaultManifestConfig()
	md := MetaData{defined: make(map[string]bool)}

	var section, arraySection string
	inArray := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if name, ok := arrayHeader(line); ok {
			arraySection, inArray = name, true
			section = ""
			continue
		}
		if name, ok := tableHeader(line); ok {
			section = name
			arraySection, inArray = "", false
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		switch {
		case inArray:
			appendStep(&cfg.Build, arraySection, models.BuildStep{Name: key, Command: value})
		case section == sectionSystem:
			applySystem(&cfg.Build, key, value)
		case section == "":
			if applyScalar(&cfg, key, value) {
				md.defined[key] = true
			}
		}
	}

	return cfg, md
}

func arrayHeader(line string) (string, bool) {
	if len(line) >= 4 && strings.HasPrefix(line, "[[") && strings.HasSuffix(line, "]]") {
		return strings.TrimSpace(line[2 : len(line)-2]), true
	}
	return "", false
}

func tableHeader(line string) (string, bool) {
	if len(line) >= 2 && strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		return strings.TrimSpace(line[1 : len(line)-1]), true
	}
	return "", false
}

// splitKeyValue splits on the first '=' and strips one pair of surrounding
// double quotes from the value.
func splitKeyValue(line string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(k), unquote(strings.TrimSpace(v)), true
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func appendStep(b *models.BuildConfig, section string, step models.BuildStep) {
	switch section {
	case sectionPrebuild:
		b.Prebuild = append(b.Prebuild, step)
	case sectionBuild:
		b.Build = append(b.Build, step)
	case sectionPostbuild:
		b.Postbuild = append(b.Postbuild, step)
	}
}

func applySystem(b *models.BuildConfig, key, value string) {
	switch key {
	case "requires":
		if items, ok := parseStringList(value); ok {
			b.SystemRequires = items
		}
	case "build-backend":
		b.BuildBackend = value
	}
}

// parseStringList parses `["a", "b"]`. Values without brackets are rejected.
func parseStringList(value string) ([]string, bool) {
	if len(value) < 2 || value[0] != '[' || value[len(value)-1] != ']' {
		return nil, false
	}
	inner := strings.TrimSpace(value[1 : len(value)-1])
	if inner == "" {
		return []string{}, true
	}

	var items []string
	for _, item := range strings.Split(inner, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, strings.TrimSpace(unquote(item)))
	}
	return items, true
}

// applyScalar sets a top-level field. It reports whether key is a known
// manifest field.
func applyScalar(cfg *models.ManifestConfig, key, value string) bool {
	switch key {
	case "id":
		cfg.ID = value
	case "name":
		cfg.Name = value
	case "description":
		cfg.Description = value
	case "version":
		cfg.Version = value
	case "versionCode":
		code, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			code = models.DefaultVersionCode
		}
		cfg.VersionCode = code
	case "author":
		cfg.Author = value
	case "license":
		cfg.License = value
	default:
		return false
	}
	return true
}
