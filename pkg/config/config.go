package config

import (
	"runtime"

	"github.com/arthur-debert/codeplex/pkg/resolver"
)

// Config is the complete codeplex configuration
type Config struct {
	Layout    Layout    `koanf:"layout" toml:"layout"`
	Discovery Discovery `koanf:"discovery" toml:"discovery"`
	Shortcuts Shortcuts `koanf:"shortcuts" toml:"shortcuts"`
	Journal   Journal   `koanf:"journal" toml:"journal"`
}

// Layout names the fixed locations inside an installation
type Layout struct {
	ApplicationDir string `koanf:"application_dir" toml:"application_dir"`
	ProfileFile    string `koanf:"profile_file" toml:"profile_file"`
	ResourceKey    string `koanf:"resource_key" toml:"resource_key"`
	NameTemplate   string `koanf:"name_template" toml:"name_template"`
}

// Discovery configures the search for installations
type Discovery struct {
	SearchRoots []string `koanf:"search_roots" toml:"search_roots"`
	Match       string   `koanf:"match" toml:"match"`
}

// Shortcuts configures launchers created for a committed duplicate
type Shortcuts struct {
	Enabled    bool   `koanf:"enabled" toml:"enabled"`
	Desktop    string `koanf:"desktop" toml:"desktop"`
	StartMenu  string `koanf:"start_menu" toml:"start_menu"`
	Executable string `koanf:"executable" toml:"executable"`
	Arguments  string `koanf:"arguments" toml:"arguments"`
	Platform   string `koanf:"platform" toml:"platform"`
}

// Journal configures the run history
type Journal struct {
	Enabled bool `koanf:"enabled" toml:"enabled"`
}

// ResolverLayout returns the layout used to resolve installations
func (c *Config) ResolverLayout() resolver.Layout {
	return resolver.Layout{
		ApplicationDir: c.Layout.ApplicationDir,
		ProfileFile:    c.Layout.ProfileFile,
		ResourceKey:    c.Layout.ResourceKey,
	}
}

// SearchRoots returns the configured search roots or the platform default
func (c *Config) SearchRoots() []string {
	if len(c.Discovery.SearchRoots) > 0 {
		return c.Discovery.SearchRoots
	}
	return DefaultSearchRoots(runtime.GOOS)
}

// DefaultSearchRoots returns where installations live on goos
func DefaultSearchRoots(goos string) []string {
	if goos == "windows" {
		return []string{`C:\Program Files`, `C:\Program Files (x86)`}
	}
	return nil
}

// ShortcutPlatform returns the configured launcher platform or the running one
func (c *Config) ShortcutPlatform() string {
	if c.Shortcuts.Platform != "" {
		return c.Shortcuts.Platform
	}
	return runtime.GOOS
}
