package codeplex

import (
	"fmt"

	"github.com/arthur-debert/codeplex/pkg/journal"
	"github.com/arthur-debert/codeplex/pkg/paths"
	"github.com/arthur-debert/codeplex/pkg/ui"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "history",
		Short:   MsgHistoryShort,
		Long:    MsgHistoryLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format(cmd)
			if err != nil {
				return err
			}
			entries, err := journal.Read(a.opts.FS, paths.JournalFile())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderHistory(entries, format))
			return nil
		},
	}
}
