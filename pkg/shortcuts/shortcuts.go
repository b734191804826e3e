package shortcuts

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"github.com/arthur-debert/codeplex/pkg/logging"
	"github.com/arthur-debert/codeplex/pkg/paths"
	"github.com/rs/zerolog"
)

// Launcher describes what a shortcut starts
type Launcher struct {
	// Name is the shortcut's display and file name
	Name       string
	Target     string
	Arguments  string
	WorkingDir string
}

// Dirs are the directories launchers are written to. Empty entries are
// skipped.
type Dirs struct {
	Desktop   string
	StartMenu string
}

// DefaultDirs returns the launcher directories for platform
func DefaultDirs(platform string) Dirs {
	dirs := Dirs{Desktop: xdg.UserDirs.Desktop}
	switch platform {
	case "darwin":
		dirs.StartMenu = filepath.Join(xdg.Home, "Applications")
	case "windows":
		if len(xdg.ApplicationDirs) > 0 {
			dirs.StartMenu = xdg.ApplicationDirs[0]
		}
	default:
		dirs.StartMenu = filepath.Join(xdg.DataHome, "applications")
	}
	return dirs
}

// file is one file of a launcher
type file struct {
	path string
	data []byte
	perm fs.FileMode
}

// Writer writes launchers
type Writer struct {
	fs       filesystem.FS
	platform string
	dirs     Dirs
	logger   zerolog.Logger
}

// NewWriter creates a Writer producing launchers for platform
func NewWriter(fsys filesystem.FS, platform string, dirs Dirs) *Writer {
	return &Writer{
		fs:       fsys,
		platform: platform,
		dirs:     dirs,
		logger:   logging.GetLogger("shortcuts"),
	}
}

// Create writes the launcher into every configured directory and returns
// the top-level paths created. Nothing is written when any of them exists.
func (w *Writer) Create(l Launcher) ([]string, error) {
	name, err := paths.ValidateDuplicateName(l.Name)
	if err != nil {
		return nil, err
	}
	l.Name = name
	if l.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput, "launcher target cannot be empty")
	}
	if l.WorkingDir == "" {
		l.WorkingDir = filepath.Dir(l.Target)
	}

	var roots []string
	var files []file
	for _, dir := range []string{w.dirs.Desktop, w.dirs.StartMenu} {
		if dir == "" {
			continue
		}
		root, parts, err := w.render(dir, l)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
		files = append(files, parts...)
	}

	// Everything below a root is new once the root itself is absent
	targets := append([]string{}, roots...)
	if w.platform == "windows" && l.Arguments != "" {
		bat := filepath.Join(l.WorkingDir, l.Name+".bat")
		targets = append(targets, bat)
		files = append(files, file{path: bat, data: renderBat(l), perm: 0755})
	}
	for _, target := range targets {
		if err := w.ensureAbsent(target); err != nil {
			return nil, err
		}
	}

	for _, f := range files {
		if err := w.write(f); err != nil {
			w.cleanup(targets)
			return nil, err
		}
	}

	w.logger.Info().Strs("paths", roots).Str("platform", w.platform).Msg("Launchers created")
	return roots, nil
}

// render returns the top-level path of the launcher in dir and its files
func (w *Writer) render(dir string, l Launcher) (string, []file, error) {
	switch w.platform {
	case "windows":
		target := l.Target
		if l.Arguments != "" {
			target = filepath.Join(l.WorkingDir, l.Name+".bat")
		}
		data, err := renderURL(target, l.Target)
		if err != nil {
			return "", nil, err
		}
		path := filepath.Join(dir, l.Name+".url")
		return path, []file{{path: path, data: data, perm: 0644}}, nil

	case "darwin":
		bundle := filepath.Join(dir, l.Name+".app")
		plist, err := renderInfoPlist(l)
		if err != nil {
			return "", nil, err
		}
		return bundle, []file{
			{path: filepath.Join(bundle, "Contents", "Info.plist"), data: plist, perm: 0644},
			{path: filepath.Join(bundle, "Contents", "MacOS", bundleExecutable), data: renderScript(l), perm: 0755},
		}, nil

	default:
		path := filepath.Join(dir, desktopFileName(l.Name))
		return path, []file{{path: path, data: renderDesktop(l), perm: 0755}}, nil
	}
}

func (w *Writer) ensureAbsent(path string) error {
	_, err := w.fs.Lstat(path)
	if err == nil {
		return errors.Newf(errors.ErrConflict, "launcher already exists: %s", path).
			WithDetail("path", path)
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return errors.FromFS(err, "check launcher", path)
}

func (w *Writer) write(f file) error {
	if err := w.fs.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return errors.FromFS(err, "create directory", filepath.Dir(f.path))
	}
	if err := w.fs.WriteFile(f.path, f.data, f.perm); err != nil {
		return errors.FromFS(err, "write launcher", f.path)
	}
	// WriteFile leaves existing modes and the umask alone
	if err := w.fs.Chmod(f.path, f.perm); err != nil {
		return errors.FromFS(err, "chmod", f.path)
	}
	return nil
}

func (w *Writer) cleanup(targets []string) {
	for _, path := range targets {
		if err := w.fs.RemoveAll(path); err != nil {
			w.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove partial launcher")
		}
	}
}

// desktopFileName keeps the .desktop file name free of spaces
func desktopFileName(name string) string {
	return "codeplex-" + strings.ReplaceAll(strings.ToLower(name), " ", "-") + ".desktop"
}
