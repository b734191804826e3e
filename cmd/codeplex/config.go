package codeplex

import (
	"fmt"

	"github.com/arthur-debert/codeplex/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
				return nil
			}

			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			out, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	return cmd
}
