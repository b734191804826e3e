// Package paths provides centralized path handling for codeplex.
//
// It covers two concerns:
//
//   - Where codeplex keeps its own files (configuration, log, journal),
//     following the XDG Base Directory specification via adrg/xdg.
//   - How duplicate locations are derived from a source directory and a
//     duplicate name, and which duplicate names are acceptable.
//
// # Environment Variables
//
//   - CODEPLEX_CONFIG_DIR: Override config directory (default: $XDG_CONFIG_HOME/codeplex)
//   - CODEPLEX_STATE_DIR: Override state directory (default: $XDG_STATE_HOME/codeplex)
//
// # Duplicate naming
//
// Duplicates are siblings of the directory they copy. With the default
// template "%s (%s)", duplicating C:\Apps\Example\App under the name "test"
// yields C:\Apps\Example\App (test).
package paths
