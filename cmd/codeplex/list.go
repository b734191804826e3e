package codeplex

import (
	"fmt"

	"github.com/arthur-debert/codeplex/pkg/discovery"
	"github.com/arthur-debert/codeplex/pkg/ui"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var searchRoots []string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Example: MsgListExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
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

			roots, err := discovery.Find(a.opts.FS, cfg.SearchRoots(), cfg.Discovery.Match)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderList(roots, format))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&searchRoots, "search-root", nil, MsgFlagSearchRoot)
	return cmd
}
