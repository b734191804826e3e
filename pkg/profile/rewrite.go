package profile

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"github.com/arthur-debert/codeplex/pkg/logging"
	"github.com/rs/zerolog"
)

// LocateConfigFile returns the profile file at rel below appPath
func LocateConfigFile(fsys filesystem.FS, appPath, rel string) (string, error) {
	path := filepath.Join(appPath, filepath.FromSlash(rel))

	info, err := fsys.Stat(path)
	if err != nil {
		return "", errors.FromFS(err, "locate profile file", path)
	}
	if info.IsDir() {
		return "", errors.Newf(errors.ErrNotFound, "profile file %s is a directory", path).
			WithDetail("path", path)
	}
	return path, nil
}

// Rewriter rewrites path references inside profile files
type Rewriter struct {
	fs     filesystem.FS
	logger zerolog.Logger
}

// NewRewriter creates a Rewriter working on fsys
func NewRewriter(fsys filesystem.FS) *Rewriter {
	return &Rewriter{
		fs:     fsys,
		logger: logging.GetLogger("profile.rewriter"),
	}
}

// RewriteDataPathReference replaces every literal occurrence of oldPath in
// file with newPath and writes the file back in its original encoding and
// permissions. It returns the number of occurrences replaced.
//
// The substitution is textual: any occurrence of oldPath anywhere in the
// file is replaced, not only the managed-resource value.
func (r *Rewriter) RewriteDataPathReference(file, oldPath, newPath string) (int, error) {
	if oldPath == "" {
		return 0, errors.New(errors.ErrInvalidInput, "old data path cannot be empty")
	}

	info, err := r.fs.Stat(file)
	if err != nil {
		return 0, errors.FromFS(err, "stat profile file", file)
	}

	raw, err := r.fs.ReadFile(file)
	if err != nil {
		return 0, errors.FromFS(err, "read profile file", file)
	}

	text, enc, err := Decode(raw)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrConfig, "profile file %s", file)
	}

	count := strings.Count(text, oldPath)
	if count == 0 {
		r.logger.Warn().
			Str("file", file).
			Str("old", oldPath).
			Msg("No references to rewrite")
		return 0, nil
	}

	out, err := Encode(strings.ReplaceAll(text, oldPath, newPath), enc)
	if err != nil {
		return 0, err
	}

	if err := r.fs.WriteFile(file, out, info.Mode().Perm()); err != nil {
		return 0, errors.FromFS(err, "write profile file", file)
	}

	r.logger.Info().
		Str("file", file).
		Str("encoding", enc.String()).
		Int("replaced", count).
		Str("old", oldPath).
		Str("new", newPath).
		Msg("Rewrote data path references")

	return count, nil
}
