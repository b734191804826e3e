package ui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/arthur-debert/codeplex/pkg/journal"
	"github.com/arthur-debert/codeplex/pkg/provision"
	"github.com/arthur-debert/codeplex/pkg/replicate"
	"github.com/charmbracelet/lipgloss"
)

// AdminHint is shown with permission errors
const AdminHint = "Are you running as administrator?"

// Summary is everything reported after a duplicate run
type Summary struct {
	Result      *provision.Result
	Stats       replicate.Stats
	Launchers   []string
	LauncherErr error
}

type row struct {
	label string
	value string
}

// block renders a title and labelled rows in the given format
func block(title string, titleStyle lipgloss.Style, rows []row, format Format) string {
	var b strings.Builder
	if format == FormatTerminal {
		b.WriteString(titleStyle.Render(title))
		for _, r := range rows {
			b.WriteString("\n")
			b.WriteString(LabelStyle.Render(r.label))
			b.WriteString(PathStyle.Render(r.value))
		}
		return BoxStyle.Render(b.String())
	}

	b.WriteString(title)
	for _, r := range rows {
		fmt.Fprintf(&b, "\n  %-9s %s", r.label+":", r.value)
	}
	return b.String()
}

// RenderSummary renders the result of a committed run
func RenderSummary(s Summary, format Format) string {
	res := s.Result
	if format == FormatJSON {
		return toJSON(summaryView(s))
	}

	name := ""
	if res.Plan != nil {
		name = res.Plan.Name
	}
	rows := []row{
		{"program", res.ProgramPath},
		{"data", res.DataPath},
		{"copied", formatStats(s.Stats)},
	}
	if res.Plan != nil {
		rows = append(rows, row{"rewrote", fmt.Sprintf("%d reference(s) in %s", res.Replacements, res.Plan.DuplicateConfigFile)})
	}
	for _, l := range s.Launchers {
		rows = append(rows, row{"launcher", l})
	}

	out := block(fmt.Sprintf("Duplicate %q created", name), SuccessStyle, rows, format)
	if s.LauncherErr != nil {
		out += "\n" + RenderWarning("launchers were not created: "+s.LauncherErr.Error(), format)
	}
	return out
}

// RenderPlan renders what a run would do
func RenderPlan(plan *provision.Plan, format Format) string {
	if format == FormatJSON {
		return toJSON(plan)
	}
	return block("Dry run, nothing was changed", TitleStyle, []row{
		{"app", plan.ApplicationPath},
		{"data", plan.DataDirectory},
		{"profile", plan.ConfigFile},
		{"program", plan.DuplicateProgramPath + " (new)"},
		{"data", plan.DuplicateDataPath + " (new)"},
	}, format)
}

// RenderError renders an error, with a hint for permission failures
func RenderError(err error, format Format) string {
	if err == nil {
		return ""
	}

	code := errors.GetErrorCode(err)
	hint := ""
	if code == errors.ErrPermission {
		hint = AdminHint
	}

	switch format {
	case FormatJSON:
		return toJSON(struct {
			Code  string `json:"code"`
			Error string `json:"error"`
			Hint  string `json:"hint,omitempty"`
		}{string(code), err.Error(), hint})
	case FormatTerminal:
		out := ErrorStyle.Render("Error ["+string(code)+"]") + " " + err.Error()
		if hint != "" {
			out += "\n" + WarningStyle.Render(hint)
		}
		return out
	default:
		out := fmt.Sprintf("Error [%s]: %s", code, err.Error())
		if hint != "" {
			out += "\n" + hint
		}
		return out
	}
}

// RenderWarning renders a warning line
func RenderWarning(msg string, format Format) string {
	if format == FormatTerminal {
		return WarningStyle.Render("Warning:") + " " + msg
	}
	return "Warning: " + msg
}

// RenderList renders discovered installation roots
func RenderList(roots []string, format Format) string {
	if format == FormatJSON {
		if roots == nil {
			roots = []string{}
		}
		return toJSON(roots)
	}
	if len(roots) == 0 {
		return "No installations found"
	}

	var b strings.Builder
	title := fmt.Sprintf("%d installation(s) found:", len(roots))
	if format == FormatTerminal {
		title = TitleStyle.Render(title)
	}
	b.WriteString(title)
	for i, root := range roots {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, root)
	}
	return b.String()
}

// RenderHistory renders journal entries, newest last
func RenderHistory(entries []journal.Entry, format Format) string {
	if format == FormatJSON {
		if entries == nil {
			entries = []journal.Entry{}
		}
		return toJSON(entries)
	}
	if len(entries) == 0 {
		return "No runs recorded"
	}

	var lines []string
	for _, e := range entries {
		outcome := e.Outcome
		if format == FormatTerminal {
			switch e.Outcome {
			case provision.OutcomeCommitted.String():
				outcome = SuccessStyle.Render(outcome)
			case provision.OutcomeRolledBack.String():
				outcome = ErrorStyle.Render(outcome)
			default:
				outcome = WarningStyle.Render(outcome)
			}
		}

		line := fmt.Sprintf("%s  %-11s %s", e.Time.Local().Format(time.DateTime), outcome, e.InstallRoot)
		if e.Name != "" {
			line += fmt.Sprintf(" (%s)", e.Name)
		}
		if e.ErrorCode != "" {
			line += fmt.Sprintf(" [%s]", e.ErrorCode)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func formatStats(s replicate.Stats) string {
	out := fmt.Sprintf("%d files, %d dirs, %d links (%s)", s.Files, s.Dirs, s.Links, humanBytes(s.Bytes))
	if s.Skipped > 0 {
		out += fmt.Sprintf(", %d skipped", s.Skipped)
	}
	return out
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

type summaryJSON struct {
	Outcome      string          `json:"outcome"`
	ProgramPath  string          `json:"program_path"`
	DataPath     string          `json:"data_path"`
	Replacements int             `json:"replacements"`
	Stats        replicate.Stats `json:"stats"`
	Launchers    []string        `json:"launchers,omitempty"`
	LauncherErr  string          `json:"launcher_error,omitempty"`
}

func summaryView(s Summary) summaryJSON {
	v := summaryJSON{
		Outcome:      s.Result.Outcome.String(),
		ProgramPath:  s.Result.ProgramPath,
		DataPath:     s.Result.DataPath,
		Replacements: s.Result.Replacements,
		Stats:        s.Stats,
		Launchers:    s.Launchers,
	}
	if s.LauncherErr != nil {
		v.LauncherErr = s.LauncherErr.Error()
	}
	return v
}

func toJSON(v interface{}) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(out)
}
