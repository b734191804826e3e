package provision

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"github.com/arthur-debert/codeplex/pkg/logging"
	"github.com/arthur-debert/codeplex/pkg/paths"
	"github.com/arthur-debert/codeplex/pkg/profile"
	"github.com/arthur-debert/codeplex/pkg/replicate"
	"github.com/arthur-debert/codeplex/pkg/resolver"
	"github.com/arthur-debert/codeplex/pkg/rollback"
	"github.com/rs/zerolog"
)

// DefaultNameTemplate derives a duplicate's directory name from the
// original base name and the duplicate name
const DefaultNameTemplate = "%s (%s)"

// Replicator copies a directory tree. When it creates anything at dst it
// returns an action that removes it, also alongside an error.
type Replicator interface {
	CopyTree(src, dst string) (rollback.Action, error)
}

// Rewriter replaces path references inside a profile file
type Rewriter interface {
	RewriteDataPathReference(file, oldPath, newPath string) (int, error)
}

// Options configures a Transaction
type Options struct {
	FS           filesystem.FS
	Layout       resolver.Layout
	NameTemplate string

	// Replicator and Rewriter default to the filesystem implementations
	Replicator Replicator
	Rewriter   Rewriter
}

// Plan holds every path a run resolves before touching the filesystem
type Plan struct {
	Name                 string
	InstallRoot          string
	ApplicationPath      string
	ConfigFile           string
	DataDirectory        string
	DuplicateProgramPath string
	DuplicateDataPath    string
	DuplicateConfigFile  string
}

// Result describes a finished run
type Result struct {
	Outcome Outcome
	State   State
	Plan    *Plan

	// ProgramPath and DataPath are set only when the run committed
	ProgramPath string
	DataPath    string

	// Replacements is the number of path references rewritten
	Replacements int

	// RollbackErr holds failures of the rollback itself
	RollbackErr error

	// History lists every state the run entered, in order
	History []State
}

// Transaction duplicates installations. A Transaction may run several
// times but never concurrently.
type Transaction struct {
	fs         filesystem.FS
	layout     resolver.Layout
	template   string
	resolver   *resolver.Resolver
	replicator Replicator
	rewriter   Rewriter
	logger     zerolog.Logger
}

// New creates a Transaction
func New(opts Options) (*Transaction, error) {
	if opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput, "filesystem is required")
	}
	if opts.Layout.ApplicationDir == "" || opts.Layout.ProfileFile == "" || opts.Layout.ResourceKey == "" {
		return nil, errors.New(errors.ErrInvalidInput, "layout requires application dir, profile file and resource key")
	}

	template := opts.NameTemplate
	if template == "" {
		template = DefaultNameTemplate
	}
	if err := paths.ValidateTemplate(template); err != nil {
		return nil, err
	}

	t := &Transaction{
		fs:         opts.FS,
		layout:     opts.Layout,
		template:   template,
		resolver:   resolver.New(opts.FS, opts.Layout),
		replicator: opts.Replicator,
		rewriter:   opts.Rewriter,
		logger:     logging.GetLogger("provision"),
	}
	if t.replicator == nil {
		t.replicator = replicate.New(opts.FS)
	}
	if t.rewriter == nil {
		t.rewriter = profile.NewRewriter(opts.FS)
	}
	return t, nil
}

// Plan resolves the paths of a run without side effects. It fails when the
// name is invalid, when the installation cannot be resolved, or when either
// duplicate path already exists.
func (t *Transaction) Plan(installRoot, name string) (*Plan, error) {
	name, err := paths.ValidateDuplicateName(name)
	if err != nil {
		return nil, err
	}

	appPath, err := t.resolver.ResolveApplicationPath(installRoot)
	if err != nil {
		return nil, err
	}
	configFile, err := t.resolver.ConfigFile(appPath)
	if err != nil {
		return nil, err
	}
	dataDir, err := t.resolver.ResolveDataDirectory(appPath)
	if err != nil {
		return nil, err
	}

	info, err := t.fs.Stat(dataDir)
	if err != nil {
		return nil, errors.FromFS(err, "data directory", dataDir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrNotFound, "data directory is not a directory: %s", dataDir).
			WithDetail("path", dataDir)
	}
	if filepath.Clean(dataDir) == filepath.Clean(appPath) || paths.IsInside(appPath, dataDir) || paths.IsInside(dataDir, appPath) {
		return nil, errors.Newf(errors.ErrConfig, "data directory %s overlaps application directory %s", dataDir, appPath)
	}

	dupProgram := paths.DuplicateSibling(appPath, name, t.template)
	plan := &Plan{
		Name:                 name,
		InstallRoot:          installRoot,
		ApplicationPath:      appPath,
		ConfigFile:           configFile,
		DataDirectory:        dataDir,
		DuplicateProgramPath: dupProgram,
		DuplicateDataPath:    paths.DuplicateSibling(dataDir, name, t.template),
		DuplicateConfigFile:  filepath.Join(dupProgram, filepath.FromSlash(t.layout.ProfileFile)),
	}

	for _, target := range []string{plan.DuplicateProgramPath, plan.DuplicateDataPath} {
		if err := t.ensureAbsent(target); err != nil {
			return nil, err
		}
	}

	t.logger.Debug().
		Str("app", plan.ApplicationPath).
		Str("data", plan.DataDirectory).
		Str("dupProgram", plan.DuplicateProgramPath).
		Str("dupData", plan.DuplicateDataPath).
		Msg("Planned duplicate")

	return plan, nil
}

func (t *Transaction) ensureAbsent(path string) error {
	_, err := t.fs.Lstat(path)
	if err == nil {
		return errors.Newf(errors.ErrConflict, "duplicate target already exists: %s", path).
			WithDetail("path", path)
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return errors.FromFS(err, "check duplicate target", path)
}

// run holds the mutable state of a single Run
type run struct {
	result *Result
	stack  *rollback.Stack
	logger zerolog.Logger
}

func (r *run) advance(to State) error {
	if err := checkTransition(r.result.State, to); err != nil {
		return err
	}
	r.logger.Debug().
		Str("from", r.result.State.String()).
		Str("to", to.String()).
		Msg("State transition")
	r.result.State = to
	r.result.History = append(r.result.History, to)
	return nil
}

// fail unwinds the rollback stack and returns cause unchanged
func (r *run) fail(cause error) (*Result, error) {
	r.logger.Error().Err(cause).Str("state", r.result.State.String()).Msg("Provisioning failed, rolling back")

	if err := r.advance(StateRolledBack); err != nil {
		r.logger.Error().Err(err).Msg("Rollback transition rejected")
	}
	if err := r.stack.Unwind(); err != nil {
		r.result.RollbackErr = err
		r.logger.Error().Err(err).Msg("Rollback incomplete")
	}
	r.result.Outcome = OutcomeRolledBack
	return r.result, cause
}

// Run duplicates the installation at installRoot under name. The returned
// Result is never nil. The returned error is the error that ended the run.
func (t *Transaction) Run(installRoot, name string) (*Result, error) {
	done := logging.LogOperationStart(t.logger, "provision")
	defer done()

	r := &run{
		result: &Result{State: StateIdle, History: []State{StateIdle}},
		stack:  rollback.NewStack(),
		logger: t.logger.With().Str("root", installRoot).Logger(),
	}

	if err := r.advance(StateResolving); err != nil {
		r.result.Outcome = OutcomeAborted
		return r.result, err
	}
	plan, err := t.Plan(installRoot, name)
	if err != nil {
		r.result.Outcome = OutcomeAborted
		r.logger.Warn().Err(err).Msg("Provisioning aborted, nothing was created")
		return r.result, err
	}
	r.result.Plan = plan

	if err := r.advance(StateCopying); err != nil {
		r.result.Outcome = OutcomeAborted
		return r.result, err
	}
	if err := t.copy(r, plan.ApplicationPath, plan.DuplicateProgramPath); err != nil {
		return r.fail(err)
	}
	if err := t.copy(r, plan.DataDirectory, plan.DuplicateDataPath); err != nil {
		return r.fail(err)
	}

	if err := r.advance(StateRewriting); err != nil {
		return r.fail(err)
	}
	n, err := t.rewriter.RewriteDataPathReference(plan.DuplicateConfigFile, plan.DataDirectory, plan.DuplicateDataPath)
	if err != nil {
		return r.fail(err)
	}
	r.result.Replacements = n
	if err := t.verify(plan); err != nil {
		return r.fail(err)
	}

	if err := r.advance(StateCommitted); err != nil {
		return r.fail(err)
	}
	r.stack.Discard()

	r.result.Outcome = OutcomeCommitted
	r.result.ProgramPath = plan.DuplicateProgramPath
	r.result.DataPath = plan.DuplicateDataPath
	r.logger.Info().
		Str("program", plan.DuplicateProgramPath).
		Str("data", plan.DuplicateDataPath).
		Int("replacements", n).
		Msg("Duplicate committed")
	return r.result, nil
}

func (t *Transaction) copy(r *run, src, dst string) error {
	action, err := t.replicator.CopyTree(src, dst)
	if action.Undo != nil {
		r.stack.Push(action)
	}
	return err
}

// verify checks that the duplicate's profile resolves inside the duplicate
// data directory
func (t *Transaction) verify(plan *Plan) error {
	value, err := t.resolver.ResourcePath(plan.DuplicateProgramPath)
	if err != nil {
		return err
	}
	if !paths.IsInside(plan.DuplicateDataPath, value) {
		return errors.Newf(errors.ErrConfig,
			"duplicate profile still points at %s, expected a path inside %s", value, plan.DuplicateDataPath).
			WithDetail("path", plan.DuplicateConfigFile)
	}
	return nil
}
