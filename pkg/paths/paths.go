package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for codeplex
	EnvConfigDir = "CODEPLEX_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for codeplex
	EnvStateDir = "CODEPLEX_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// File and directory names used by codeplex itself.
const (
	// AppDirName is the directory name for codeplex-specific files
	AppDirName = "codeplex"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "codeplex.log"

	// JournalFileName is the name of the run journal
	JournalFileName = "journal.yaml"
)

// ConfigDir returns the directory holding the user configuration.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFile returns the default user configuration file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns the directory holding the log and the journal.
// XDG_STATE_HOME is read directly so tests can redirect it with t.Setenv;
// adrg/xdg caches its values at init.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFile returns the path to the log file.
func LogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// JournalFile returns the path to the run journal.
func JournalFile() string {
	return filepath.Join(StateDir(), JournalFileName)
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}
