package version

import "fmt"

// Build information set by ldflags:
//
//	-X github.com/arthur-debert/codeplex/internal/version.Version={{.Version}}
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the version block printed by `codeplex version`
func String() string {
	out := fmt.Sprintf("codeplex version %s", Version)
	if Commit != "" && Commit != "unknown" {
		out += fmt.Sprintf("\nCommit: %s", Commit)
	}
	if Date != "" && Date != "unknown" {
		out += fmt.Sprintf("\nBuilt:  %s", Date)
	}
	return out
}
