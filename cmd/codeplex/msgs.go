package codeplex

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Create side-by-side duplicates of an installation"
	MsgDuplicateShort  = "Duplicate an installation under a new name"
	MsgListShort       = "List installations found in the search roots"
	MsgConfigShort     = "Print the effective configuration"
	MsgHistoryShort    = "Show recorded duplicate runs"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion scripts"

	// Prompts
	MsgPromptName    = "Name of the duplicate"
	MsgPromptConfirm = "Duplicate %s as %q?"

	// Status messages
	MsgCancelled = "Cancelled, nothing was changed"

	// Warnings and errors
	MsgErrNameRequired = "a duplicate name is required: pass --name"
	MsgErrNoCommand    = "no command specified"
	MsgWarnJournal     = "Failed to record run in journal"
	MsgWarnRollback    = "rollback incomplete, remove these leftovers by hand: %v"
	MsgErrSeveralRoots = "%d installations found, pass one as an argument"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun      = "Preview changes without executing them"
	MsgFlagConfig      = "Path to the configuration file"
	MsgFlagOutput      = "Output format: auto, term, text or json"
	MsgFlagName        = "Name of the duplicate"
	MsgFlagNoShortcuts = "Do not create launchers for the duplicate"
	MsgFlagSearchRoot  = "Directory to search for installations (repeatable)"
	MsgFlagYes         = "Do not ask for confirmation"
	MsgFlagTemplate    = "Print a commented template instead of the effective values"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/duplicate-long.txt
	msgDuplicateLongRaw string
	MsgDuplicateLong    = strings.TrimSpace(msgDuplicateLongRaw)

	//go:embed msgs/duplicate-example.txt
	msgDuplicateExampleRaw string
	MsgDuplicateExample    = strings.TrimRight(msgDuplicateExampleRaw, "\n")

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/history-long.txt
	msgHistoryLongRaw string
	MsgHistoryLong    = strings.TrimSpace(msgHistoryLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
