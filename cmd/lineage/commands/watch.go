package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [versions...]",
		Short: "Re-project whenever the schema document changes",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), projectOptions(cmd, args))
		},
	}
	addOutputFlags(cmd)
	return cmd
}
