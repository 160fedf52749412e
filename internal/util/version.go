package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spachava753/apmm/internal/models"
)

// FallbackVersionCode is used when the clock cannot be turned into a code.
const FallbackVersionCode int64 = 2025061700

// versionCodeLayout formats a time as YYYYMMDDHHMM.
const versionCodeLayout = "200601021504"

// NextVersion returns the version that follows current.
// A leading "v" is kept if present. When commits > 0 the patch component is
// set to commits (the checkout's commit count), otherwise it is incremented.
// Components past the third are carried over unchanged.
func NextVersion(current string, commits int) (string, error) {
	current = strings.TrimSpace(current)
	prefix := ""
	body := current
	if strings.HasPrefix(body, "v") {
		prefix = "v"
		body = body[1:]
	}

	parts := strings.Split(body, ".")
	if len(parts) < 3 {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidVersion, current)
	}

	nums := make([]uint64, 3)
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.ParseUint(parts[i], 10, 32)
		if err != nil {
			return "", fmt.Errorf("%w: invalid %s version number %q", models.ErrInvalidVersion, name, parts[i])
		}
		nums[i] = n
	}

	if commits > 0 {
		nums[2] = uint64(commits)
	} else {
		nums[2]++
	}

	out := []string{
		strconv.FormatUint(nums[0], 10),
		strconv.FormatUint(nums[1], 10),
		strconv.FormatUint(nums[2], 10),
	}
	out = append(out, parts[3:]...)
	return prefix + strings.Join(out, "."), nil
}

// VersionCode derives a YYYYMMDDHHMM code from t in UTC.
func VersionCode(t time.Time) int64 {
	code, err := strconv.ParseInt(t.UTC().Format(versionCodeLayout), 10, 64)
	if err != nil || code <= 0 {
		return FallbackVersionCode
	}
	return code
}

// ValidateModuleID checks that id is usable as a module id: 1-50 ASCII
// letters, digits, '_' or '-', not starting with a digit.
func ValidateModuleID(id string) error {
	if id == "" {
		return fmt.Errorf("module id cannot be empty")
	}
	if len(id) > 50 {
		return fmt.Errorf("module id cannot be longer than 50 characters")
	}
	for _, c := range id {
		if !isASCIIAlnum(c) && c != '_' && c != '-' {
			return fmt.Errorf("module id %q can only contain letters, numbers, underscores, and hyphens", id)
		}
	}
	if id[0] >= '0' && id[0] <= '9' {
		return fmt.Errorf("module id %q cannot start with a number", id)
	}
	return nil
}

// SanitizeModuleID turns an arbitrary name (usually a directory name) into a
// valid module id.
func SanitizeModuleID(input string) string {
	var b strings.Builder
	first := true

	for _, c := range input {
		switch {
		case isASCIIAlnum(c) || (!first && (c == '_' || c == '-')):
			if first && c >= '0' && c <= '9' {
				b.WriteByte('_')
			}
			b.WriteRune(toLowerASCII(c))
			first = false
		case !first && (c == ' ' || c == '\t' || c == '.'):
			b.WriteByte('_')
		}
	}

	out := b.String()
	if out == "" {
		out = "my_module"
	}
	if len(out) > 50 {
		out = out[:50]
	}
	return out
}

func isASCIIAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func toLowerASCII(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
