// cmd/codeplex/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: in-memory filesystem, temp config and state directories
// PURPOSE: Test the commands end to end through cobra

package codeplex_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/codeplex/cmd/codeplex"
	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/journal"
	"github.com/arthur-debert/codeplex/pkg/paths"
	"github.com/arthur-debert/codeplex/pkg/resolver"
	"github.com/arthur-debert/codeplex/pkg/testutil"
	"github.com/arthur-debert/codeplex/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codesysLayout = resolver.Layout{
	ApplicationDir: "CODESYS",
	ProfileFile:    "Settings/RepositoryLocations.ini",
	ResourceKey:    "Location0",
}

var fixedNow = time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)

type harness struct {
	env      *testutil.TestEnvironment
	install  *testutil.Install
	prompter *ui.ScriptedPrompter
	tty      bool
}

func setup(t *testing.T) *harness {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	install := env.Install("Programs/CODESYS 3.5").
		WithLayout(codesysLayout).
		WithFile("Common/CODESYS.exe", "binary").
		WithDataFile("Libraries/lib.library", "library").
		Build()

	t.Setenv("CODEPLEX_SHORTCUTS__PLATFORM", "linux")
	t.Setenv("CODEPLEX_SHORTCUTS__DESKTOP", "/Desktop")
	t.Setenv("CODEPLEX_SHORTCUTS__START_MENU", "/Menu")

	return &harness{env: env, install: install, prompter: &ui.ScriptedPrompter{}}
}

func (h *harness) execute(args ...string) (string, string, error) {
	cmd := codeplex.NewRootCmdWithOptions(codeplex.Options{
		FS:          h.env.FS,
		Prompter:    h.prompter,
		Interactive: func() bool { return h.tty },
		Now:         func() time.Time { return fixedNow },
	})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func (h *harness) journal(t *testing.T) []journal.Entry {
	t.Helper()
	entries, err := journal.Read(h.env.FS, paths.JournalFile())
	require.NoError(t, err)
	return entries
}

const (
	dupProgram = "/Programs/CODESYS 3.5/CODESYS (qa)"
	dupData    = "/data/CODESYS 3.5 (qa)"
	dupProfile = dupProgram + "/Settings/RepositoryLocations.ini"
	desktopLnk = "/Desktop/codeplex-codesys-3.5-(qa).desktop"
	menuLnk    = "/Menu/codeplex-codesys-3.5-(qa).desktop"
)

func TestDuplicate_Commits(t *testing.T) {
	h := setup(t)

	out, _, err := h.execute("duplicate", h.install.Root, "--name", "qa")
	require.NoError(t, err)

	assert.Contains(t, out, `Duplicate "qa" created`)
	assert.Contains(t, out, dupProgram)
	assert.Contains(t, out, desktopLnk)

	fs := h.env.FS
	testutil.AssertFileContent(t, fs, dupProgram+"/Common/CODESYS.exe", "binary")
	testutil.AssertFileContent(t, fs, dupData+"/Libraries/lib.library", "library")
	assert.Contains(t, testutil.ReadProfile(t, fs, dupProfile), "Location0="+filepath.Join(dupData, "Libraries"))
	assert.Contains(t, testutil.ReadProfile(t, fs, h.install.ProfileFile), "Location0="+h.install.ResourcePath)

	testutil.AssertExists(t, fs, desktopLnk)
	testutil.AssertExists(t, fs, menuLnk)
	launcher, err := fs.ReadFile(desktopLnk)
	require.NoError(t, err)
	assert.Contains(t, string(launcher), dupProgram+"/Common/CODESYS.exe")

	entries := h.journal(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "committed", entries[0].Outcome)
	assert.Equal(t, "qa", entries[0].Name)
	assert.Equal(t, h.install.Root, entries[0].InstallRoot)
	assert.True(t, fixedNow.Equal(entries[0].Time))

	_, err = os.Stat(paths.JournalFile())
	assert.True(t, os.IsNotExist(err), "journal must stay on the injected filesystem")
}

func TestDuplicate_Alias(t *testing.T) {
	h := setup(t)

	_, _, err := h.execute("dup", h.install.Root, "-n", "qa", "--no-shortcuts")
	require.NoError(t, err)
	testutil.AssertExists(t, h.env.FS, dupProgram)
}

func TestDuplicate_DryRun(t *testing.T) {
	h := setup(t)

	out, _, err := h.execute("duplicate", h.install.Root, "--name", "qa", "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "Dry run, nothing was changed")
	assert.Contains(t, out, dupProgram+" (new)")
	assert.Contains(t, out, dupData+" (new)")
	testutil.AssertNotExists(t, h.env.FS, dupProgram)
	testutil.AssertNotExists(t, h.env.FS, dupData)
	testutil.AssertNotExists(t, h.env.FS, desktopLnk)
	assert.Empty(t, h.journal(t))
}

func TestDuplicate_NoShortcuts(t *testing.T) {
	h := setup(t)

	out, _, err := h.execute("duplicate", h.install.Root, "--name", "qa", "--no-shortcuts")
	require.NoError(t, err)

	assert.NotContains(t, out, "launcher")
	testutil.AssertExists(t, h.env.FS, dupProgram)
	testutil.AssertNotExists(t, h.env.FS, "/Desktop")
	testutil.AssertNotExists(t, h.env.FS, "/Menu")
}

func TestDuplicate_JournalDisabled(t *testing.T) {
	h := setup(t)
	t.Setenv("CODEPLEX_JOURNAL__ENABLED", "false")

	_, _, err := h.execute("duplicate", h.install.Root, "--name", "qa", "--no-shortcuts")
	require.NoError(t, err)
	assert.Empty(t, h.journal(t))
}

func TestDuplicate_LauncherConflictKeepsDuplicate(t *testing.T) {
	h := setup(t)
	require.NoError(t, h.env.FS.MkdirAll("/Desktop", 0755))
	require.NoError(t, h.env.FS.WriteFile(desktopLnk, []byte("mine"), 0644))

	out, _, err := h.execute("duplicate", h.install.Root, "--name", "qa")
	require.NoError(t, err)

	assert.Contains(t, out, "Warning: launchers were not created")
	testutil.AssertExists(t, h.env.FS, dupProgram)
	testutil.AssertExists(t, h.env.FS, dupData)
	testutil.AssertFileContent(t, h.env.FS, desktopLnk, "mine")
	testutil.AssertNotExists(t, h.env.FS, menuLnk)
}

func TestDuplicate_ConflictIsRecorded(t *testing.T) {
	h := setup(t)

	_, _, err := h.execute("duplicate", h.install.Root, "--name", "qa", "--no-shortcuts")
	require.NoError(t, err)

	_, _, err = h.execute("duplicate", h.install.Root, "--name", "qa", "--no-shortcuts")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConflict))

	entries := h.journal(t)
	require.Len(t, entries, 2)
	assert.Equal(t, "committed", entries[0].Outcome)
	assert.Equal(t, "aborted", entries[1].Outcome)
	assert.Equal(t, "CONFLICT", entries[1].ErrorCode)

	out, _, err := h.execute("history")
	require.NoError(t, err)
	assert.Contains(t, out, "committed")
	assert.Contains(t, out, "aborted")
	assert.Contains(t, out, "[CONFLICT]")
}

func TestDuplicate_NameRequiredWithoutTerminal(t *testing.T) {
	h := setup(t)

	_, _, err := h.execute("duplicate", h.install.Root)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Empty(t, h.prompter.Asked)
	testutil.AssertNotExists(t, h.env.FS, dupProgram)
}

func TestDuplicate_InvalidName(t *testing.T) {
	h := setup(t)

	_, _, err := h.execute("duplicate", h.install.Root, "--name", "a/b")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDuplicate_Interactive(t *testing.T) {
	h := setup(t)
	h.tty = true
	h.prompter.Inputs = []string{"qa"}
	h.prompter.Confirms = []bool{true}

	out, _, err := h.execute("duplicate", "--search-root", "/Programs", "--no-shortcuts")
	require.NoError(t, err)

	assert.Contains(t, out, `Duplicate "qa" created`)
	assert.Equal(t, []string{
		codeplex.MsgPromptName,
		`Duplicate /Programs/CODESYS 3.5 as "qa"?`,
	}, h.prompter.Asked)
	testutil.AssertExists(t, h.env.FS, dupProgram)
}

func TestDuplicate_InteractiveSelectsAmongSeveral(t *testing.T) {
	h := setup(t)
	h.env.Install("Programs/CODESYS 3.6").WithLayout(codesysLayout).Build()
	h.tty = true
	h.prompter.Selections = []string{"/Programs/CODESYS 3.6"}

	_, _, err := h.execute("duplicate", "--search-root", "/Programs", "--name", "qa", "--yes", "--no-shortcuts")
	require.NoError(t, err)

	testutil.AssertExists(t, h.env.FS, "/Programs/CODESYS 3.6/CODESYS (qa)")
	testutil.AssertNotExists(t, h.env.FS, dupProgram)
	assert.Len(t, h.prompter.Asked, 1)
}

func TestDuplicate_SeveralRootsWithoutTerminal(t *testing.T) {
	h := setup(t)
	h.env.Install("Programs/CODESYS 3.6").WithLayout(codesysLayout).Build()

	_, _, err := h.execute("duplicate", "--search-root", "/Programs", "--name", "qa")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDuplicate_NothingDiscovered(t *testing.T) {
	h := setup(t)

	_, _, err := h.execute("duplicate", "--search-root", "/Elsewhere", "--name", "qa")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestDuplicate_Declined(t *testing.T) {
	h := setup(t)
	h.tty = true
	h.prompter.Confirms = []bool{false}

	out, _, err := h.execute("duplicate", h.install.Root, "--name", "qa")
	require.NoError(t, err)

	assert.Contains(t, out, codeplex.MsgCancelled)
	testutil.AssertNotExists(t, h.env.FS, dupProgram)
	assert.Empty(t, h.journal(t))
}

func TestDuplicate_JSONOutput(t *testing.T) {
	h := setup(t)

	out, _, err := h.execute("duplicate", h.install.Root, "--name", "qa", "--no-shortcuts", "--output", "json")
	require.NoError(t, err)

	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "committed", v["outcome"])
	assert.Equal(t, dupProgram, v["program_path"])
	assert.Equal(t, dupData, v["data_path"])
}

func TestUnknownOutputFormat(t *testing.T) {
	h := setup(t)

	_, _, err := h.execute("list", "--output", "xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestErrorFormat(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name   string
		output string
		want   ui.Format
	}{
		{"explicit_json", "json", ui.FormatJSON},
		{"explicit_term", "term", ui.FormatTerminal},
		{"auto_resolves_for_stderr", "auto", ui.FormatText},
		{"unknown_falls_back_to_auto", "xml", ui.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := codeplex.NewRootCmd()
			require.NoError(t, root.PersistentFlags().Set("output", tt.output))
			assert.Equal(t, tt.want, codeplex.ErrorFormat(root))
		})
	}
}

func TestList(t *testing.T) {
	h := setup(t)
	h.env.Install("Programs/CODESYS 3.6").WithLayout(codesysLayout).Build()
	require.NoError(t, h.env.FS.MkdirAll("/Programs/Other", 0755))

	out, _, err := h.execute("list", "--search-root", "/Programs")
	require.NoError(t, err)
	assert.Equal(t, "2 installation(s) found:\n  1. /Programs/CODESYS 3.5\n  2. /Programs/CODESYS 3.6\n", out)

	out, _, err = h.execute("list", "--search-root", "/Programs", "-o", "json")
	require.NoError(t, err)
	var roots []string
	require.NoError(t, json.Unmarshal([]byte(out), &roots))
	assert.Equal(t, []string{"/Programs/CODESYS 3.5", "/Programs/CODESYS 3.6"}, roots)
}

func TestList_Empty(t *testing.T) {
	h := setup(t)

	out, _, err := h.execute("list", "--search-root", "/nowhere")
	require.NoError(t, err)
	assert.Equal(t, "No installations found\n", out)
}

func TestHistory_AfterDuplicate(t *testing.T) {
	h := setup(t)

	_, _, err := h.execute("duplicate", h.install.Root, "--name", "qa", "--no-shortcuts")
	require.NoError(t, err)

	out, _, err := h.execute("history", "--output", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "committed")
	assert.Contains(t, out, h.install.Root)
}

func TestHistory_Empty(t *testing.T) {
	h := setup(t)

	out, _, err := h.execute("history")
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded\n", out)
}

func TestConfig(t *testing.T) {
	h := setup(t)

	out, _, err := h.execute("config")
	require.NoError(t, err)
	assert.Contains(t, out, "[layout]")
	assert.Contains(t, out, "application_dir")
	assert.Contains(t, out, "CODESYS")
	// Environment overrides show up in the effective configuration
	assert.Contains(t, out, "/Desktop")

	out, _, err = h.execute("config", "--template")
	require.NoError(t, err)
	assert.Contains(t, out, "# application_dir")
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	h := setup(t)

	_, _, err := h.execute("config", "--config", filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestVersion(t *testing.T) {
	h := setup(t)

	out, _, err := h.execute("version")
	require.NoError(t, err)
	assert.Contains(t, out, "codeplex version")
}

func TestCompletion(t *testing.T) {
	h := setup(t)

	out, _, err := h.execute("completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "codeplex")

	_, _, err = h.execute("completion", "tcsh")
	assert.Error(t, err)
}

func TestRoot_NoCommand(t *testing.T) {
	h := setup(t)

	_, _, err := h.execute()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
