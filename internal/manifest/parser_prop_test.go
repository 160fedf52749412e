package manifest_test

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/spachava753/apmm/internal/manifest"
)

// TestParseTotal checks that arbitrary input always yields a config with the
// invariant fields populated.
func TestParseTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.String().Draw(rt, "text")
		cfg := manifest.Parse(text)
		if cfg.Build.BuildBackend == "" && !strings.Contains(text, "build-backend") {
			rt.Fatalf("backend lost its default for %q", text)
		}
	})
}

// TestParseLineSoup builds documents out of grammar fragments and checks
// that step counts match the number of key lines under recognized headers.
func TestParseLineSoup(t *testing.T) {
	headers := []string{"[[build.prebuild]]", "[[build.build]]", "[[build.postbuild]]", "[[build.other]]", "[build.system]", "[github]"}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(rt, "lines")
		var b strings.Builder
		want := map[string]int{}
		current := ""

		for i := 0; i < n; i++ {
			switch rapid.IntRange(0, 3).Draw(rt, "kind") {
			case 0:
				current = rapid.SampledFrom(headers).Draw(rt, "header")
				b.WriteString(current + "\n")
			case 1:
				b.WriteString("# comment\n")
			case 2:
				b.WriteString("no separator here\n")
			default:
				key := rapid.StringMatching(`[a-z]{1,6}`).Draw(rt, "key")
				b.WriteString(key + " = \"echo " + key + "\"\n")
				want[current]++
			}
		}

		cfg := manifest.Parse(b.String())
		if got := len(cfg.Build.Prebuild); got != want["[[build.prebuild]]"] {
			rt.Fatalf("prebuild steps = %d, want %d", got, want["[[build.prebuild]]"])
		}
		if got := len(cfg.Build.Build); got != want["[[build.build]]"] {
			rt.Fatalf("build steps = %d, want %d", got, want["[[build.build]]"])
		}
		if got := len(cfg.Build.Postbuild); got != want["[[build.postbuild]]"] {
			rt.Fatalf("postbuild steps = %d, want %d", got, want["[[build.postbuild]]"])
		}
	})
}
