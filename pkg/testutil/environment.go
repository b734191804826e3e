// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate isolated test environments

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"github.com/arthur-debert/codeplex/pkg/paths"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a filesystem and isolated tool directories
type TestEnvironment struct {
	// Root is the directory fixtures are created under
	Root string
	FS   filesystem.FS
	Type EnvType

	ConfigDir string
	StateDir  string

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:         t,
		Type:      envType,
		ConfigDir: t.TempDir(),
		StateDir:  t.TempDir(),
	}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/"
		env.FS = filesystem.NewMemoryFS()
	case EnvIsolated:
		env.Root = t.TempDir()
		env.FS = filesystem.NewOS()
	}

	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)

	return env
}

// Path joins elem onto the environment root
func (e *TestEnvironment) Path(elem ...string) string {
	return filepath.Join(append([]string{e.Root}, elem...)...)
}
