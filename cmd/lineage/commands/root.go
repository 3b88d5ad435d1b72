// Package commands implements the CLI commands for the lineage schema tool.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/lineage/internal/app"
	"go.trai.ch/lineage/internal/build"
	"golang.org/x/term"
)

// CLI represents the command line interface for lineage.
type CLI struct {
	app        Application
	rootCmd    *cobra.Command
	isTerminal func() bool
	shutdown   func(context.Context) error
}

// Application represents the application logic interface.
type Application interface {
	Check(ctx context.Context, opts app.CheckOptions) error
	Project(ctx context.Context, opts app.ProjectOptions) (*app.ProjectResult, error)
	Show(ctx context.Context, w io.Writer, opts app.ShowOptions) error
	Watch(ctx context.Context, opts app.ProjectOptions) error
	SetLogFormat(format string, stderrIsTerminal bool) error
	EnableTracing() func(context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "lineage",
		Short:         "Project versioned schemas into per-version snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("file", "f", "", "Schema document (default: discover lineage.yaml upwards)")
	rootCmd.PersistentFlags().String("log-format", app.LogFormatAuto, "Log format: auto, pretty, or json")
	rootCmd.PersistentFlags().Bool("trace", false, "Report operation spans through the logger")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stderr.Fd()))
		},
	}

	rootCmd.PersistentPreRunE = c.setup

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newProjectCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("log-format")
	if err := c.app.SetLogFormat(format, c.isTerminal()); err != nil {
		return err
	}
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		c.shutdown = c.app.EnableTracing()
	}
	return nil
}

// Execute runs the root command with the given context. Tracing enabled
// by --trace is flushed before it returns, even when the command failed.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()

	if c.shutdown != nil {
		shutdown := c.shutdown
		c.shutdown = nil
		if serr := shutdown(context.WithoutCancel(ctx)); err == nil {
			err = serr
		}
	}
	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetTerminal overrides stderr terminal detection. Used for testing.
func (c *CLI) SetTerminal(isTerminal bool) {
	c.isTerminal = func() bool { return isTerminal }
}
