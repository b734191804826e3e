package testutil

import (
	"testing"

	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"github.com/arthur-debert/codeplex/pkg/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertExists checks that path exists
func AssertExists(t *testing.T, fs filesystem.FS, path string) {
	t.Helper()
	_, err := fs.Lstat(path)
	assert.NoError(t, err, "expected %s to exist", path)
}

// AssertNotExists checks that nothing exists at path
func AssertNotExists(t *testing.T, fs filesystem.FS, path string) {
	t.Helper()
	_, err := fs.Lstat(path)
	assert.Error(t, err, "expected %s not to exist", path)
}

// AssertFileContent checks that a file has the expected content
func AssertFileContent(t *testing.T, fs filesystem.FS, path, expected string) {
	t.Helper()
	content, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected, string(content))
}

// ReadProfile returns the decoded text of a profile file
func ReadProfile(t *testing.T, fs filesystem.FS, path string) string {
	t.Helper()
	raw, err := fs.ReadFile(path)
	require.NoError(t, err)
	text, _, err := profile.Decode(raw)
	require.NoError(t, err)
	return text
}
