// Package resolver locates an installation's application directory and the
// external data directory its profile file points at.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"github.com/arthur-debert/codeplex/pkg/logging"
	"github.com/arthur-debert/codeplex/pkg/paths"
	"github.com/arthur-debert/codeplex/pkg/profile"
	"github.com/rs/zerolog"
)

// Layout names the fixed locations inside an installation
type Layout struct {
	// ApplicationDir is the child of the install root holding the program
	ApplicationDir string
	// ProfileFile is the profile file, relative to the application directory
	ProfileFile string
	// ResourceKey is the profile key naming the managed-resource path
	ResourceKey string
}

// Resolver resolves installation paths
type Resolver struct {
	fs     filesystem.FS
	layout Layout
	logger zerolog.Logger
}

// New creates a Resolver
func New(fsys filesystem.FS, layout Layout) *Resolver {
	return &Resolver{
		fs:     fsys,
		layout: layout,
		logger: logging.GetLogger("resolver"),
	}
}

// ResolveApplicationPath returns the application directory of installRoot
func (r *Resolver) ResolveApplicationPath(installRoot string) (string, error) {
	appPath := filepath.Join(installRoot, r.layout.ApplicationDir)

	info, err := r.fs.Stat(appPath)
	if err != nil {
		return "", errors.FromFS(err, "expected application directory", appPath)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrNotFound, "expected directory to exist: %s", appPath).
			WithDetail("path", appPath)
	}

	r.logger.Debug().Str("path", appPath).Msg("Resolved application directory")
	return appPath, nil
}

// ConfigFile returns the profile file of the application at appPath
func (r *Resolver) ConfigFile(appPath string) (string, error) {
	return profile.LocateConfigFile(r.fs, appPath, r.layout.ProfileFile)
}

// ResourcePath returns the managed-resource value of the last profile,
// exactly as written in the profile file
func (r *Resolver) ResourcePath(appPath string) (string, error) {
	file, err := r.ConfigFile(appPath)
	if err != nil {
		return "", err
	}

	doc, err := profile.Load(r.fs, file)
	if err != nil {
		return "", err
	}

	last, err := doc.Last()
	if err != nil {
		return "", err
	}

	value, ok := last.Get(r.layout.ResourceKey)
	if !ok {
		return "", errors.Newf(errors.ErrConfig, "key %q missing from profile [%s]", r.layout.ResourceKey, last.Name).
			WithDetail("path", file)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.Newf(errors.ErrConfig, "key %q in profile [%s] is empty", r.layout.ResourceKey, last.Name).
			WithDetail("path", file)
	}

	r.logger.Debug().
		Str("file", file).
		Str("profile", last.Name).
		Int("profiles", len(doc.Profiles)).
		Str("value", value).
		Msg("Read managed-resource path")

	return value, nil
}

// ResolveDataDirectory returns the data directory referenced by the
// application at appPath: the parent of the managed-resource path. The
// result is a textual prefix of the value stored in the profile file.
func (r *Resolver) ResolveDataDirectory(appPath string) (string, error) {
	value, err := r.ResourcePath(appPath)
	if err != nil {
		return "", err
	}

	if !filepath.IsAbs(value) {
		return "", errors.Newf(errors.ErrConfig, "managed-resource path %q is not absolute", value)
	}

	dataDir, ok := paths.Parent(value)
	if !ok || filepath.Dir(filepath.Clean(dataDir)) == filepath.Clean(dataDir) {
		return "", errors.Newf(errors.ErrConfig, "managed-resource path %q has no usable parent directory", value)
	}

	return dataDir, nil
}
