package testutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/codeplex/pkg/profile"
	"github.com/arthur-debert/codeplex/pkg/resolver"
	"github.com/stretchr/testify/require"
)

// DefaultLayout mirrors the shipped defaults with a short application dir
var DefaultLayout = resolver.Layout{
	ApplicationDir: "App",
	ProfileFile:    "Settings/RepositoryLocations.ini",
	ResourceKey:    "Location0",
}

// Install describes a fixture installation
type Install struct {
	Root         string
	AppPath      string
	ProfileFile  string
	DataDir      string
	ResourcePath string
}

type section struct {
	name string
	keys []string
}

// InstallBuilder builds an installation on a TestEnvironment
type InstallBuilder struct {
	env       *TestEnvironment
	root      string
	layout    resolver.Layout
	dataDir   string
	resource  string
	encoding  profile.Encoding
	sections  []section
	files     map[string]string
	dataFiles map[string]string
}

// Install starts building an installation rooted at root, relative to the
// environment root. The data directory defaults to data/<base of root>.
func (e *TestEnvironment) Install(root string) *InstallBuilder {
	return &InstallBuilder{
		env:       e,
		root:      e.Path(root),
		layout:    DefaultLayout,
		dataDir:   e.Path("data", filepath.Base(root)),
		resource:  "Libraries",
		encoding:  profile.UTF16LE,
		files:     map[string]string{},
		dataFiles: map[string]string{},
	}
}

// WithLayout overrides the installation layout
func (b *InstallBuilder) WithLayout(layout resolver.Layout) *InstallBuilder {
	b.layout = layout
	return b
}

// WithData sets the data directory, relative to the environment root, and
// the managed resource inside it
func (b *InstallBuilder) WithData(dataDir, resource string) *InstallBuilder {
	b.dataDir = b.env.Path(dataDir)
	b.resource = resource
	return b
}

// WithEncoding sets the profile file encoding
func (b *InstallBuilder) WithEncoding(enc profile.Encoding) *InstallBuilder {
	b.encoding = enc
	return b
}

// WithProfile adds a profile section. Keys are written as given, so they
// should be "key=value" lines. The managed-resource key can be written as
// "{resource}" to get the fixture's resource path.
func (b *InstallBuilder) WithProfile(name string, keys ...string) *InstallBuilder {
	b.sections = append(b.sections, section{name: name, keys: keys})
	return b
}

// WithFile adds a file below the application directory
func (b *InstallBuilder) WithFile(rel, content string) *InstallBuilder {
	b.files[rel] = content
	return b
}

// WithDataFile adds a file below the data directory
func (b *InstallBuilder) WithDataFile(rel, content string) *InstallBuilder {
	b.dataFiles[rel] = content
	return b
}

// ResourcePath returns the managed-resource path the profile will hold
func (b *InstallBuilder) ResourcePath() string {
	return filepath.Join(b.dataDir, b.resource)
}

// ProfileText renders the profile file content
func (b *InstallBuilder) ProfileText() string {
	sections := b.sections
	if len(sections) == 0 {
		sections = []section{{name: "Default", keys: []string{b.layout.ResourceKey + "={resource}"}}}
	}

	var sb strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&sb, "[%s]\r\n", s.name)
		for _, k := range s.keys {
			sb.WriteString(strings.ReplaceAll(k, "{resource}", b.ResourcePath()))
			sb.WriteString("\r\n")
		}
	}
	return sb.String()
}

// Build writes the installation and returns its description
func (b *InstallBuilder) Build() *Install {
	t := b.env.t
	t.Helper()
	fs := b.env.FS

	appPath := filepath.Join(b.root, b.layout.ApplicationDir)
	profileFile := filepath.Join(appPath, filepath.FromSlash(b.layout.ProfileFile))

	require.NoError(t, fs.MkdirAll(filepath.Dir(profileFile), 0755))
	raw, err := profile.Encode(b.ProfileText(), b.encoding)
	require.NoError(t, err)
	require.NoError(t, fs.WriteFile(profileFile, raw, 0644))

	for rel, content := range b.files {
		b.writeFile(filepath.Join(appPath, filepath.FromSlash(rel)), content)
	}

	require.NoError(t, fs.MkdirAll(b.ResourcePath(), 0755))
	for rel, content := range b.dataFiles {
		b.writeFile(filepath.Join(b.dataDir, filepath.FromSlash(rel)), content)
	}

	return &Install{
		Root:         b.root,
		AppPath:      appPath,
		ProfileFile:  profileFile,
		DataDir:      b.dataDir,
		ResourcePath: b.ResourcePath(),
	}
}

func (b *InstallBuilder) writeFile(path, content string) {
	t := b.env.t
	t.Helper()
	require.NoError(t, b.env.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, b.env.FS.WriteFile(path, []byte(content), 0644))
}
