package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/codeplex/cmd/codeplex"
	"github.com/arthur-debert/codeplex/pkg/ui"
)

func main() {
	rootCmd := codeplex.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.RenderError(err, codeplex.ErrorFormat(rootCmd)))
		os.Exit(1)
	}
}
