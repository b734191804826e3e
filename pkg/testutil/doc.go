// Package testutil provides fixtures for testing codeplex components.
//
// Key components:
//   - TestEnvironment: an isolated filesystem with the tool's own config and
//     state directories redirected into temp dirs
//   - InstallBuilder: declarative setup of an installation, its profile file
//     and its data directory
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated only for symlinks and modes
//   - All test data should be defined inline, not in external files
package testutil
