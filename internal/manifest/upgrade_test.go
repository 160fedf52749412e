package manifest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spachava753/apmm/internal/manifest"
	"github.com/spachava753/apmm/internal/models"
	"github.com/spachava753/apmm/internal/util"
)

func nextNoCheckout(current string) (string, error) {
	return util.NextVersion(current, 0)
}

func TestBumpVersion(t *testing.T) {
	in := `id = "demo"
# keep me
version = "v1.2.3"
versionCode = 1

  description = "indented stays indented"
[[build.prebuild]]
version = "echo not a version"
`
	want := `id = "demo"
# keep me
version = "v1.2.4"
versionCode = 202601020304

  description = "indented stays indented"
[[build.prebuild]]
version = "echo not a version"
`

	out, up, err := manifest.BumpVersion(in, nextNoCheckout, 202601020304)
	require.NoError(t, err)
	assert.Equal(t, want, out)
	assert.True(t, up.VersionReplaced)
	assert.True(t, up.CodeReplaced)
	assert.Equal(t, "v1.2.3", up.OldVersion)
	assert.Equal(t, "v1.2.4", up.NewVersion)
	assert.Equal(t, int64(202601020304), up.VersionCode)
}

func TestBumpVersionOnlyFirstOccurrence(t *testing.T) {
	in := "version = \"1.0.0\"\nversionCode = 5\nversion = \"9.9.9\"\nversionCode = 6\n"

	out, _, err := manifest.BumpVersion(in, nextNoCheckout, 300)
	require.NoError(t, err)
	assert.Equal(t, "version = \"1.0.1\"\nversionCode = 300\nversion = \"9.9.9\"\nversionCode = 6\n", out)
}

func TestBumpVersionPreservesCRLF(t *testing.T) {
	in := "id = \"demo\"\r\nversion = \"1.0.0\"\r\nversionCode = 1\r\n"

	out, _, err := manifest.BumpVersion(in, nextNoCheckout, 7)
	require.NoError(t, err)
	assert.Equal(t, "id = \"demo\"\r\nversion = \"1.0.1\"\r\nversionCode = 7\r\n", out)
}

func TestBumpVersionNoTrailingNewline(t *testing.T) {
	out, _, err := manifest.BumpVersion("version = \"0.1.0\"", nextNoCheckout, 7)
	require.NoError(t, err)
	assert.Equal(t, "version = \"0.1.1\"", out)
}

func TestBumpVersionInvalid(t *testing.T) {
	_, up, err := manifest.BumpVersion("version = \"1.2\"\nversionCode = 1\n", nextNoCheckout, 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidVersion))
	assert.False(t, up.VersionReplaced)
}

func TestBumpVersionMissingKeys(t *testing.T) {
	in := "id = \"demo\"\n"
	out, up, err := manifest.BumpVersion(in, nextNoCheckout, 7)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.False(t, up.VersionReplaced)
	assert.False(t, up.CodeReplaced)
}
