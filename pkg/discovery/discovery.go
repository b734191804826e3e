// Package discovery finds installation roots by scanning search roots.
package discovery

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"github.com/arthur-debert/codeplex/pkg/logging"
)

// Find returns the immediate child directories of each search root whose
// name contains match, sorted. Missing search roots are skipped. An empty
// match accepts every child directory.
func Find(fsys filesystem.FS, searchRoots []string, match string) ([]string, error) {
	logger := logging.GetLogger("discovery")

	var found []string
	seen := make(map[string]bool)
	for _, root := range searchRoots {
		entries, err := fsys.ReadDir(root)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				logger.Debug().Str("root", root).Msg("Search root missing, skipping")
				continue
			}
			return nil, errors.FromFS(err, "scan", root)
		}

		for _, entry := range entries {
			if !strings.Contains(entry.Name(), match) {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if !isDir(fsys, entry, path) || seen[path] {
				continue
			}
			seen[path] = true
			found = append(found, path)
		}
	}

	sort.Strings(found)
	logger.Debug().Int("count", len(found)).Strs("roots", searchRoots).Msg("Discovered installations")
	return found, nil
}

// isDir follows symlinked entries, as installers often link versions
func isDir(fsys filesystem.FS, entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}
