package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/codeplex/pkg/errors"
)

// reservedChars cannot appear in a Windows file name.
const reservedChars = `<>:"/\|?*`

// ValidateDuplicateName trims name and ensures it can be embedded in a
// directory name. It returns the trimmed name.
func ValidateDuplicateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New(errors.ErrInvalidInput, "duplicate name cannot be empty")
	}

	if name == "." || name == ".." || strings.Contains(name, "..") {
		return "", errors.Newf(errors.ErrInvalidInput, "duplicate name %q cannot contain '..'", name)
	}

	if strings.ContainsAny(name, reservedChars) {
		return "", errors.Newf(errors.ErrInvalidInput,
			"duplicate name %q contains invalid characters: %s", name, reservedChars)
	}

	for _, r := range name {
		if r < 0x20 {
			return "", errors.Newf(errors.ErrInvalidInput, "duplicate name %q contains control characters", name)
		}
	}

	return name, nil
}

// ValidateTemplate checks that a name template takes exactly the base name
// and the duplicate name.
func ValidateTemplate(template string) error {
	if strings.Count(template, "%s") != 2 || strings.Count(template, "%") != 2 {
		return errors.Newf(errors.ErrInvalidInput,
			"name template %q must contain exactly two %%s verbs", template)
	}
	return nil
}

// DuplicateSibling derives the path of a duplicate of dir: a sibling of dir
// whose name is template applied to dir's base name and name.
func DuplicateSibling(dir, name, template string) string {
	dir = trimTrailingSeparators(dir)
	parent, base := splitLast(dir)
	return parent + fmt.Sprintf(template, base, name)
}

// Parent returns the textual parent of path. Unlike filepath.Dir it does not
// clean the result, so the returned string is a prefix of path exactly as it
// was written. Both '/' and the OS separator are recognised.
func Parent(path string) (string, bool) {
	trimmed := trimTrailingSeparators(path)
	parent, base := splitLast(trimmed)
	if parent == "" || base == "" {
		return "", false
	}

	parentTrimmed := trimTrailingSeparators(parent)
	if parentTrimmed == "" || isVolumeOnly(parentTrimmed) {
		// Keep the root separator: "/data" -> "/", "C:\data" -> "C:\"
		return parent, true
	}
	return parentTrimmed, true
}

// IsInside reports whether child lies strictly inside parent.
func IsInside(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}

// splitLast splits path after its last separator. The separator stays with
// the parent part.
func splitLast(path string) (string, string) {
	idx := strings.LastIndexFunc(path, isSeparator)
	if idx < 0 {
		return "", path
	}
	return path[:idx+1], path[idx+1:]
}

func trimTrailingSeparators(path string) string {
	trimmed := strings.TrimRightFunc(path, isSeparator)
	if trimmed == "" || isVolumeOnly(trimmed) {
		// Root paths keep one separator
		if len(path) > len(trimmed) {
			return path[:len(trimmed)+1]
		}
	}
	return trimmed
}

func isVolumeOnly(path string) bool {
	return path != "" && filepath.VolumeName(path) == path
}

func isSeparator(r rune) bool {
	return r == '/' || (r < 0x80 && os.IsPathSeparator(uint8(r)))
}
