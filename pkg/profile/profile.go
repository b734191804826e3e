package profile

import (
	"strings"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"gopkg.in/ini.v1"
)

// Key is a single key/value pair of a profile
type Key struct {
	Name  string
	Value string
}

// Profile is a named section of a profile file
type Profile struct {
	Name string
	Keys []Key
}

// Get returns the value of key. Key names are case-insensitive.
func (p Profile) Get(key string) (string, bool) {
	for _, k := range p.Keys {
		if strings.EqualFold(k.Name, key) {
			return k.Value, true
		}
	}
	return "", false
}

// Document is a decoded profile file
type Document struct {
	Path     string
	Encoding Encoding
	Text     string
	Profiles []Profile
}

// Last returns the authoritative profile: the last one in file order
func (d *Document) Last() (Profile, error) {
	return Last(d.Profiles)
}

// Parse reads the profiles of text in file order. Keys that appear before
// the first section header do not belong to any profile and are ignored.
func Parse(text string) ([]Profile, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:     true,
		IgnoreInlineComment: true,
		// A repeated header starts a new profile rather than extending the first
		AllowNonUniqueSections: true,
		// Windows directory values end in a backslash
		IgnoreContinuation: true,
		// Python-style "key: value" lines are rare but harmless
		KeyValueDelimiters: "=:",
	}, []byte(text))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "cannot parse profile file")
	}

	var profiles []Profile
	for _, section := range f.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		p := Profile{Name: section.Name()}
		for _, key := range section.Keys() {
			p.Keys = append(p.Keys, Key{Name: key.Name(), Value: key.Value()})
		}
		profiles = append(profiles, p)
	}

	if len(profiles) == 0 {
		return nil, errors.New(errors.ErrConfig, "profile file contains no profiles")
	}
	return profiles, nil
}

// Last returns the last profile in file order
func Last(profiles []Profile) (Profile, error) {
	if len(profiles) == 0 {
		return Profile{}, errors.New(errors.ErrConfig, "profile file contains no profiles")
	}
	return profiles[len(profiles)-1], nil
}

// Load reads, decodes and parses the profile file at path
func Load(fsys filesystem.FS, path string) (*Document, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.FromFS(err, "read profile file", path)
	}

	text, enc, err := Decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfig, "profile file %s", path)
	}

	profiles, err := Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfig, "profile file %s", path)
	}

	return &Document{Path: path, Encoding: enc, Text: text, Profiles: profiles}, nil
}
