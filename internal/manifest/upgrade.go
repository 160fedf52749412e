package manifest

import (
	"fmt"
	"strings"

	"github.com/spachava753/apmm/internal/models"
)

// NextVersionFunc computes the replacement for the current version string.
type NextVersionFunc func(current string) (string, error)

// BumpVersion rewrites the first top-level version line with next(current)
// and the first top-level versionCode line with code. Every other line,
// including comments, blank lines and later duplicates of either key, is
// passed through byte for byte. If next fails, no output is produced.
func BumpVersion(text string, next NextVersionFunc, code int64) (string, models.VersionUpgrade, error) {
	var up models.VersionUpgrade
	lines := strings.Split(text, "\n")
	topLevel := true

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := arrayHeader(line); ok {
			topLevel = false
			continue
		}
		if _, ok := tableHeader(line); ok {
			topLevel = false
			continue
		}
		if !topLevel {
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		switch {
		case key == "version" && !up.VersionReplaced:
			newVersion, err := next(value)
			if err != nil {
				return "", up, fmt.Errorf("upgrading version %q: %w", value, err)
			}
			lines[i] = fmt.Sprintf("version = \"%s\"", newVersion) + lineEnding(raw)
			up.OldVersion = value
			up.NewVersion = newVersion
			up.VersionReplaced = true
		case key == "versionCode" && !up.CodeReplaced:
			lines[i] = fmt.Sprintf("versionCode = %d", code) + lineEnding(raw)
			up.VersionCode = code
			up.CodeReplaced = true
		}
	}

	return strings.Join(lines, "\n"), up, nil
}

// lineEnding keeps the carriage return of CRLF documents on rewritten lines.
func lineEnding(raw string) string {
	if strings.HasSuffix(raw, "\r") {
		return "\r"
	}
	return ""
}
