// Package replicate copies directory trees without overwriting anything.
//
// CopyTree recreates directories with their permission bits, copies regular
// files with their mode and modification time, and recreates symlinks as
// links without following them. Special files are skipped.
//
// A copy that fails part way leaves the partial destination in place. The
// action returned alongside the error removes it; cleaning up is the
// caller's decision.
package replicate

import (
	stderrors "errors"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"github.com/arthur-debert/codeplex/pkg/logging"
	"github.com/arthur-debert/codeplex/pkg/paths"
	"github.com/arthur-debert/codeplex/pkg/rollback"
	"github.com/rs/zerolog"
)

// Stats counts what has been copied
type Stats struct {
	Files   int
	Dirs    int
	Links   int
	Skipped int
	Bytes   int64
}

// Add returns the sum of two Stats
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Files:   s.Files + o.Files,
		Dirs:    s.Dirs + o.Dirs,
		Links:   s.Links + o.Links,
		Skipped: s.Skipped + o.Skipped,
		Bytes:   s.Bytes + o.Bytes,
	}
}

// Replicator copies trees on a filesystem. Stats accumulate over every
// CopyTree call.
type Replicator struct {
	fs     filesystem.FS
	logger zerolog.Logger
	stats  Stats
}

// New creates a Replicator working on fsys
func New(fsys filesystem.FS) *Replicator {
	return &Replicator{
		fs:     fsys,
		logger: logging.GetLogger("replicate"),
	}
}

// Stats returns the totals copied so far
func (r *Replicator) Stats() Stats {
	return r.stats
}

// CopyTree copies the directory src to dst, which must not exist.
//
// On success the returned action removes dst entirely. When the copy fails
// after dst was created, the returned action is still valid and removes the
// partial tree. When nothing was created the action has a nil Undo.
func (r *Replicator) CopyTree(src, dst string) (rollback.Action, error) {
	var none rollback.Action

	if _, err := r.fs.Lstat(dst); err == nil {
		return none, errors.Newf(errors.ErrConflict, "destination already exists: %s", dst).
			WithDetail("path", dst)
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return none, errors.FromFS(err, "check destination", dst)
	}

	info, err := r.fs.Stat(src)
	if err != nil {
		return none, errors.FromFS(err, "copy source", src)
	}
	if !info.IsDir() {
		return none, errors.Newf(errors.ErrInvalidInput, "copy source is not a directory: %s", src).
			WithDetail("path", src)
	}
	if paths.IsInside(src, dst) {
		return none, errors.Newf(errors.ErrInvalidInput, "cannot copy %s into itself at %s", src, dst)
	}

	r.logger.Info().Str("src", src).Str("dst", dst).Msg("Copying tree")

	before := r.stats
	if err := r.fs.Mkdir(dst, 0700); err != nil {
		return none, errors.FromFS(err, "create directory", dst)
	}
	undo := r.removeAction(dst)

	if err := r.copyDirContents(src, dst, info); err != nil {
		r.logger.Error().Err(err).Str("dst", dst).Msg("Copy failed, partial tree left in place")
		return undo, err
	}

	copied := r.stats
	r.logger.Info().
		Str("dst", dst).
		Int("files", copied.Files-before.Files).
		Int("dirs", copied.Dirs-before.Dirs).
		Int("links", copied.Links-before.Links).
		Int64("bytes", copied.Bytes-before.Bytes).
		Msg("Tree copied")

	return undo, nil
}

func (r *Replicator) removeAction(dst string) rollback.Action {
	return rollback.Action{
		Description: "remove " + dst,
		Undo: func() error {
			r.logger.Info().Str("path", dst).Msg("Removing copied tree")
			r.makeRemovable(dst)
			if err := r.fs.RemoveAll(dst); err != nil {
				return errors.FromFS(err, "remove", dst)
			}
			return nil
		},
	}
}

// makeRemovable gives the owner write access to path and everything below
// it. Copies keep read-only modes, which would otherwise stop RemoveAll.
// Symlinks are left alone as Chmod follows them.
func (r *Replicator) makeRemovable(path string) {
	info, err := r.fs.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink != 0 {
		return
	}

	perm := info.Mode().Perm()
	want := perm | 0200
	if info.IsDir() {
		want = perm | 0700
	}
	if want != perm {
		if err := r.fs.Chmod(path, want); err != nil {
			r.logger.Debug().Err(err).Str("path", path).Msg("Cannot make path writable")
		}
	}
	if !info.IsDir() {
		return
	}

	entries, err := r.fs.ReadDir(path)
	if err != nil {
		return
	}
	for _, entry := range entries {
		r.makeRemovable(filepath.Join(path, entry.Name()))
	}
}

// copyDirContents fills the already created directory dst and then applies
// the source directory's mode and times.
func (r *Replicator) copyDirContents(src, dst string, info fs.FileInfo) error {
	r.stats.Dirs++

	entries, err := r.fs.ReadDir(src)
	if err != nil {
		return errors.FromFS(err, "read directory", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		entryInfo, err := r.fs.Lstat(srcPath)
		if err != nil {
			return errors.FromFS(err, "stat", srcPath)
		}

		mode := entryInfo.Mode()
		switch {
		case mode&fs.ModeSymlink != 0:
			err = r.copyLink(srcPath, dstPath)
		case mode.IsDir():
			if err = r.fs.Mkdir(dstPath, 0700); err != nil {
				return errors.FromFS(err, "create directory", dstPath)
			}
			err = r.copyDirContents(srcPath, dstPath, entryInfo)
		case mode.IsRegular():
			err = r.copyFile(srcPath, dstPath, entryInfo)
		default:
			r.stats.Skipped++
			r.logger.Warn().
				Str("path", srcPath).
				Str("mode", mode.String()).
				Msg("Skipping special file")
		}
		if err != nil {
			return err
		}
	}

	if err := r.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.FromFS(err, "chmod", dst)
	}
	if err := r.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.FromFS(err, "set times", dst)
	}
	return nil
}

func (r *Replicator) copyFile(src, dst string, info fs.FileInfo) error {
	in, err := r.fs.Open(src)
	if err != nil {
		return errors.FromFS(err, "open", src)
	}
	defer func() { _ = in.Close() }()

	out, err := r.fs.Create(dst, 0600)
	if err != nil {
		return errors.FromFS(err, "create", dst)
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return errors.FromFS(err, "copy", dst)
	}

	if err := r.fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.FromFS(err, "chmod", dst)
	}
	if err := r.fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.FromFS(err, "set times", dst)
	}

	r.stats.Files++
	r.stats.Bytes += n
	r.logger.Trace().Str("path", dst).Int64("bytes", n).Msg("Copied file")
	return nil
}

func (r *Replicator) copyLink(src, dst string) error {
	target, err := r.fs.Readlink(src)
	if err != nil {
		return errors.FromFS(err, "read link", src)
	}
	if err := r.fs.Symlink(target, dst); err != nil {
		return errors.FromFS(err, "create link", dst)
	}

	r.stats.Links++
	r.logger.Trace().Str("path", dst).Str("target", target).Msg("Recreated link")
	return nil
}
