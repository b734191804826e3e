package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs the same behavioural checks against any FS rooted at root.
func exercise(t *testing.T, fsys FS, root string) {
	t.Helper()

	dir := filepath.Join(root, "a", "b")
	require.NoError(t, fsys.MkdirAll(dir, 0755))

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, fsys.WriteFile(file, []byte("hello"), 0644))

	data, err := fsys.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = fsys.ReadFile(dir)
	assert.Error(t, err, "reading a directory should fail")

	w, err := fsys.Create(filepath.Join(dir, "new.txt"), 0600)
	require.NoError(t, err)
	_, err = io.WriteString(w, "created")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = fsys.Create(filepath.Join(dir, "new.txt"), 0600)
	assert.True(t, errors.Is(err, fs.ErrExist), "Create must not overwrite, got %v", err)

	r, err := fsys.Open(filepath.Join(dir, "new.txt"))
	require.NoError(t, err)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "created", string(content))

	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "file.txt", entries[0].Name())
	assert.Equal(t, "new.txt", entries[1].Name())

	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, fsys.Chtimes(file, mtime, mtime))
	info, err := fsys.Stat(file)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))

	require.NoError(t, fsys.RemoveAll(filepath.Join(root, "a")))
	_, err = fsys.Lstat(dir)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOSFS(t *testing.T) {
	exercise(t, NewOS(), t.TempDir())
}

func TestOSFS_Symlinks(t *testing.T) {
	root := t.TempDir()
	fsys := NewOS()

	target := filepath.Join(root, "target")
	require.NoError(t, fsys.WriteFile(target, []byte("x"), 0644))
	link := filepath.Join(root, "link")
	require.NoError(t, fsys.Symlink("target", link))

	info, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	dest, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "target", dest)
}

func TestAferoFS(t *testing.T) {
	exercise(t, NewMemoryFS(), "/root")
}

func TestAferoFS_NoSymlinkSupport(t *testing.T) {
	fsys := NewMemoryFS()

	err := fsys.Symlink("a", "/b")
	assert.True(t, errors.Is(err, afero.ErrNoSymlink))

	_, err = fsys.Readlink("/b")
	assert.True(t, errors.Is(err, afero.ErrNoReadlink))
}

func TestAferoFS_ReadOnly(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/cfg.ini", []byte("x"), 0644))

	fsys := NewAferoFS(afero.NewReadOnlyFs(base))
	err := fsys.WriteFile("/cfg.ini", []byte("y"), 0644)
	assert.Error(t, err)
}
