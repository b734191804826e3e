package codeplex

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/codeplex/pkg/config"
	"github.com/arthur-debert/codeplex/pkg/discovery"
	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/journal"
	"github.com/arthur-debert/codeplex/pkg/logging"
	"github.com/arthur-debert/codeplex/pkg/paths"
	"github.com/arthur-debert/codeplex/pkg/provision"
	"github.com/arthur-debert/codeplex/pkg/replicate"
	"github.com/arthur-debert/codeplex/pkg/shortcuts"
	"github.com/arthur-debert/codeplex/pkg/ui"
	"github.com/spf13/cobra"
)

func newDuplicateCmd(a *app) *cobra.Command {
	var (
		name        string
		noShortcuts bool
		searchRoots []string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:     "duplicate [install-root]",
		Aliases: []string{"dup"},
		Short:   MsgDuplicateShort,
		Long:    MsgDuplicateLong,
		Example: MsgDuplicateExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if noShortcuts {
				overrides["shortcuts.enabled"] = false
			}
			if len(searchRoots) > 0 {
				overrides["discovery.search_roots"] = searchRoots
			}
			cfg, err := a.loadConfig(overrides)
			if err != nil {
				return err
			}
			format, err := a.format(cmd)
			if err != nil {
				return err
			}

			var installRoot string
			if len(args) == 1 {
				installRoot = args[0]
			} else if installRoot, err = a.selectInstallRoot(cfg); err != nil {
				return err
			}

			if name == "" {
				if name, err = a.askName(); err != nil {
					return err
				}
			}

			return a.duplicate(cmd, cfg, format, installRoot, name, yes)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", MsgFlagName)
	cmd.Flags().BoolVar(&noShortcuts, "no-shortcuts", false, MsgFlagNoShortcuts)
	cmd.Flags().StringArrayVar(&searchRoots, "search-root", nil, MsgFlagSearchRoot)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)

	return cmd
}

func (a *app) duplicate(cmd *cobra.Command, cfg *config.Config, format ui.Format, installRoot, name string, yes bool) error {
	logger := logging.GetLogger("cli")
	out := cmd.OutOrStdout()

	rep := replicate.New(a.opts.FS)
	tx, err := provision.New(provision.Options{
		FS:           a.opts.FS,
		Layout:       cfg.ResolverLayout(),
		NameTemplate: cfg.Layout.NameTemplate,
		Replicator:   rep,
	})
	if err != nil {
		return err
	}

	if a.dryRun {
		plan, err := tx.Plan(installRoot, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, ui.RenderPlan(plan, format))
		return nil
	}

	if !yes && a.opts.Interactive() {
		ok, err := a.opts.Prompter.Confirm(fmt.Sprintf(MsgPromptConfirm, installRoot, strings.TrimSpace(name)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, MsgCancelled)
			return nil
		}
	}

	result, runErr := tx.Run(installRoot, name)

	if cfg.Journal.Enabled {
		entry := journal.FromResult(a.opts.Now(), installRoot, result, runErr)
		if err := journal.Append(a.opts.FS, paths.JournalFile(), entry); err != nil {
			logger.Warn().Err(err).Msg(MsgWarnJournal)
		}
	}

	if runErr != nil {
		if result.RollbackErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderWarning(fmt.Sprintf(MsgWarnRollback, result.RollbackErr), format))
		}
		return runErr
	}

	summary := ui.Summary{Result: result, Stats: rep.Stats()}
	if cfg.Shortcuts.Enabled {
		summary.Launchers, summary.LauncherErr = a.createLaunchers(cfg, installRoot, result)
		if summary.LauncherErr != nil {
			logger.Warn().Err(summary.LauncherErr).Msg("Launcher creation failed")
		}
	}
	fmt.Fprintln(out, ui.RenderSummary(summary, format))
	return nil
}

// selectInstallRoot discovers installations and lets the user pick one
func (a *app) selectInstallRoot(cfg *config.Config) (string, error) {
	roots, err := discovery.Find(a.opts.FS, cfg.SearchRoots(), cfg.Discovery.Match)
	if err != nil {
		return "", err
	}
	if len(roots) > 1 && !a.opts.Interactive() {
		return "", errors.Newf(errors.ErrInvalidInput, MsgErrSeveralRoots, len(roots)).
			WithDetail("roots", roots)
	}
	return ui.SelectInstallRoot(a.opts.Prompter, roots)
}

func (a *app) askName() (string, error) {
	if !a.opts.Interactive() {
		return "", errors.New(errors.ErrInvalidInput, MsgErrNameRequired)
	}
	return a.opts.Prompter.Input(MsgPromptName)
}

// createLaunchers writes launchers for a committed duplicate. Launchers are
// named after the install root so duplicates of different versions differ.
func (a *app) createLaunchers(cfg *config.Config, installRoot string, result *provision.Result) ([]string, error) {
	platform := cfg.ShortcutPlatform()
	dirs := shortcuts.DefaultDirs(platform)
	if cfg.Shortcuts.Desktop != "" {
		dirs.Desktop = cfg.Shortcuts.Desktop
	}
	if cfg.Shortcuts.StartMenu != "" {
		dirs.StartMenu = cfg.Shortcuts.StartMenu
	}

	w := shortcuts.NewWriter(a.opts.FS, platform, dirs)
	return w.Create(shortcuts.Launcher{
		Name:      fmt.Sprintf(cfg.Layout.NameTemplate, filepath.Base(installRoot), result.Plan.Name),
		Target:    filepath.Join(result.ProgramPath, filepath.FromSlash(cfg.Shortcuts.Executable)),
		Arguments: cfg.Shortcuts.Arguments,
	})
}
