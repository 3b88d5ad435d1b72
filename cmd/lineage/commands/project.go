package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lineage/internal/app"
)

func (c *CLI) newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [versions...]",
		Short: "Emit one snapshot per version",
		Long:  "Emit one snapshot per version. Without arguments every declared version is projected.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := projectOptions(cmd, args)
			noCache, _ := cmd.Flags().GetBool("no-cache")
			opts.NoCache = noCache

			_, err := c.app.Project(cmd.Context(), opts)
			return err
		},
	}
	addOutputFlags(cmd)
	cmd.Flags().BoolP("no-cache", "n", false, "Emit every snapshot even when it is unchanged")
	return cmd
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Output directory (default: snapshots/ next to the schema)")
	cmd.Flags().String("format", "json", "Snapshot format: json or yaml")
	cmd.Flags().IntP("workers", "w", 0, "Concurrent projections (default: number of CPUs)")
}

func projectOptions(cmd *cobra.Command, args []string) app.ProjectOptions {
	file, _ := cmd.Flags().GetString("file")
	out, _ := cmd.Flags().GetString("out")
	format, _ := cmd.Flags().GetString("format")
	workers, _ := cmd.Flags().GetInt("workers")

	return app.ProjectOptions{
		File:     file,
		Versions: args,
		Out:      out,
		Format:   format,
		Workers:  workers,
	}
}
