package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	Version, Commit, Date = "1.2.0", "unknown", "unknown"
	assert.Equal(t, "codeplex version 1.2.0", String())

	Commit, Date = "abc123", "2026-01-02"
	assert.Equal(t, "codeplex version 1.2.0\nCommit: abc123\nBuilt:  2026-01-02", String())
}
