package config

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/paths"
)

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	required := []struct{ key, value string }{
		{"layout.application_dir", c.Layout.ApplicationDir},
		{"layout.profile_file", c.Layout.ProfileFile},
		{"layout.resource_key", c.Layout.ResourceKey},
		{"layout.name_template", c.Layout.NameTemplate},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Newf(errors.ErrInvalidInput, "%s cannot be empty", r.key).WithDetail("key", r.key)
		}
	}

	if filepath.IsAbs(c.Layout.ProfileFile) || strings.HasPrefix(c.Layout.ProfileFile, "/") {
		return errors.Newf(errors.ErrInvalidInput, "layout.profile_file must be relative, got %s", c.Layout.ProfileFile).
			WithDetail("key", "layout.profile_file")
	}

	if err := paths.ValidateTemplate(c.Layout.NameTemplate); err != nil {
		return err
	}

	switch c.Shortcuts.Platform {
	case "", "windows", "darwin", "linux":
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shortcuts.platform %q", c.Shortcuts.Platform).
			WithDetail("key", "shortcuts.platform")
	}
	return nil
}
