package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lineage/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the schema against every declared version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")
			return c.app.Check(cmd.Context(), app.CheckOptions{File: file})
		},
	}
}
