package terminal

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/de-tools/paas-statements/pkg/runtime/terminal/commands"
	"github.com/de-tools/paas-statements/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	factory   commands.GeneratorFactory
	reporters map[string]commands.StatementHandler
	now       func() time.Time
	rootCmd   *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Factory commands.GeneratorFactory
	Output  io.Writer
	Now     func() time.Time
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	cli := &CLI{
		factory: opts.Factory,
		reporters: map[string]commands.StatementHandler{
			"table": export.NewReporter(opts.Output),
			"text":  NewReporter(opts.Output),
		},
		now: opts.Now,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// ExecuteContext runs the CLI with ctx, which carries the process logger.
func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// ExecuteArgs runs the CLI with explicit arguments.
func (cli *CLI) ExecuteArgs(args []string) error {
	cli.rootCmd.SetArgs(args)
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "statements",
		Short:         "Organization billing statements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewShowCmd(cli.factory, cli.reporters, cli.now))
	cmd.AddCommand(commands.NewMonthsCmd(cli.now))
	cmd.AddCommand(commands.NewImportCmd())
	cmd.AddCommand(commands.NewImportsCmd())

	return cmd
}
