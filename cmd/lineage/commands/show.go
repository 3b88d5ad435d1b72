package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lineage/internal/app"
)

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <version>",
		Short: "Print the snapshot tree of one version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			return c.app.Show(cmd.Context(), cmd.OutOrStdout(), app.ShowOptions{
				File:    file,
				Version: args[0],
			})
		},
	}
}
