package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/codeplex/cmd/codeplex"
	"github.com/arthur-debert/codeplex/internal/version"
)

func main() {
	rootCmd := codeplex.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "CODEPLEX",
		Section: "1",
		Source:  "codeplex " + version.Version,
		Manual:  "codeplex manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
