package filesystem

import (
	"io"
	"io/fs"
	"time"
)

// FS abstracts the filesystem operations used by codeplex
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Open(name string) (io.ReadCloser, error)
	// Create creates a new file for writing and fails if it already exists
	Create(name string, perm fs.FileMode) (io.WriteCloser, error)

	// Directory operations
	Mkdir(name string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Metadata
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error

	RemoveAll(path string) error
}
