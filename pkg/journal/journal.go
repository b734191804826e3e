// Package journal keeps a history of provisioning runs as a stream of YAML
// documents, one per run.
package journal

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"github.com/arthur-debert/codeplex/pkg/provision"
	"gopkg.in/yaml.v3"
)

// Entry records one provisioning run
type Entry struct {
	Time    time.Time `yaml:"time"`
	Outcome string    `yaml:"outcome"`
	State   string    `yaml:"state"`
	Name    string    `yaml:"name,omitempty"`

	InstallRoot          string `yaml:"install_root,omitempty"`
	ApplicationPath      string `yaml:"application_path,omitempty"`
	DataDirectory        string `yaml:"data_directory,omitempty"`
	DuplicateProgramPath string `yaml:"duplicate_program_path,omitempty"`
	DuplicateDataPath    string `yaml:"duplicate_data_path,omitempty"`

	ErrorCode     string `yaml:"error_code,omitempty"`
	Error         string `yaml:"error,omitempty"`
	RollbackError string `yaml:"rollback_error,omitempty"`
}

// FromResult builds an entry from the outcome of a run
func FromResult(at time.Time, installRoot string, result *provision.Result, runErr error) Entry {
	e := Entry{
		Time:        at.UTC(),
		InstallRoot: installRoot,
	}
	if result != nil {
		e.Outcome = result.Outcome.String()
		e.State = result.State.String()
		if p := result.Plan; p != nil {
			e.Name = p.Name
			e.ApplicationPath = p.ApplicationPath
			e.DataDirectory = p.DataDirectory
			e.DuplicateProgramPath = p.DuplicateProgramPath
			e.DuplicateDataPath = p.DuplicateDataPath
		}
		if result.RollbackErr != nil {
			e.RollbackError = result.RollbackErr.Error()
		}
	}
	if runErr != nil {
		e.ErrorCode = string(errors.GetErrorCode(runErr))
		e.Error = runErr.Error()
	}
	return e
}

// Append adds entry to the journal at path on fsys, creating it if needed
func Append(fsys filesystem.FS, path string, entry Entry) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.FromFS(err, "create journal directory", filepath.Dir(path))
	}

	existing, err := fsys.ReadFile(path)
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.FromFS(err, "read journal", path)
	}

	data, err := yaml.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode journal entry")
	}

	buf := bytes.NewBuffer(existing)
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString("---\n")
	buf.Write(data)

	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.FromFS(err, "write journal", path)
	}
	return nil
}

// Read returns every entry in the journal at path on fsys, oldest first. A
// missing journal has no entries.
func Read(fsys filesystem.FS, path string) ([]Entry, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.FromFS(err, "read journal", path)
	}

	var entries []Entry
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	for {
		var e Entry
		err := dec.Decode(&e)
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entries, errors.Wrapf(err, errors.ErrConfig, "corrupt journal %s", path).
				WithDetail("path", path)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
