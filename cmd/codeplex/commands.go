package codeplex

import (
	"fmt"
	"os"
	"time"

	"github.com/arthur-debert/codeplex/internal/version"
	"github.com/arthur-debert/codeplex/pkg/config"
	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/filesystem"
	"github.com/arthur-debert/codeplex/pkg/logging"
	"github.com/arthur-debert/codeplex/pkg/ui"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Options replaces the collaborators a command talks to. Zero fields get
// the real filesystem, terminal prompts and clock.
type Options struct {
	FS       filesystem.FS
	Prompter ui.Prompter
	// Interactive reports whether the user can be prompted
	Interactive func() bool
	Now         func() time.Time
}

func (o Options) withDefaults() Options {
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
	if o.Prompter == nil {
		o.Prompter = ui.NewPterm()
	}
	if o.Interactive == nil {
		o.Interactive = func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// app carries global flag values and collaborators shared by all commands
type app struct {
	opts       Options
	verbosity  int
	dryRun     bool
	configFile string
	output     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithOptions(Options{})
}

// NewRootCmdWithOptions creates the root command with explicit collaborators
func NewRootCmdWithOptions(opts Options) *cobra.Command {
	initTemplateFormatting()

	a := &app{opts: opts.withDefaults()}

	rootCmd := &cobra.Command{
		Use:     "codeplex",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithWriter(a.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&a.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "auto", MsgFlagOutput)

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newDuplicateCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// ErrorFormat returns the format errors from rootCmd should be printed in
func ErrorFormat(rootCmd *cobra.Command) ui.Format {
	output, _ := rootCmd.PersistentFlags().GetString("output")
	f, err := ui.ParseFormat(output)
	if err != nil {
		f = ui.FormatAuto
	}
	return ui.Resolve(f, os.Stderr)
}

// format resolves the --output flag for the command's output stream
func (a *app) format(cmd *cobra.Command) (ui.Format, error) {
	f, err := ui.ParseFormat(a.output)
	if err != nil {
		return f, err
	}
	if out, ok := cmd.OutOrStdout().(*os.File); ok {
		return ui.Resolve(f, out), nil
	}
	if f == ui.FormatAuto {
		return ui.FormatText, nil
	}
	return f, nil
}

func (a *app) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	return config.Load(config.LoadOptions{File: a.configFile, Overrides: overrides})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
