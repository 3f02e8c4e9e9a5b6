// Package commands implements the CLI commands for the pim manifest checker.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pim/internal/app"
	"go.trai.ch/pim/internal/core/domain"
)

// CLI represents the command line interface for pim.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Check(ctx context.Context, opts app.CheckOptions) (*domain.Report, error)
	List(ctx context.Context, manifestPath string) (*domain.Manifest, error)
	Lock(ctx context.Context, manifestPath string) (*domain.Snapshot, error)
	Watch(ctx context.Context, opts app.CheckOptions, onReport func(*domain.Report)) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pim",
		Short:         "A structural validator for Pipfile dependency manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("file", "f", "", "Path to the manifest (default: discover Pipfile upwards)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newLockCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
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

func manifestFlag(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("file")
	return path
}
