package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/domain"
	"github.com/de-tools/paas-statements/pkg/services/statement"
	"github.com/spf13/cobra"
)

// StatementHandler renders a generated statement.
type StatementHandler interface {
	Handle(st *domain.Statement) error
}

// GeneratorFactory builds a generator from a config file path. The returned
// func releases its resources.
type GeneratorFactory func(ctx context.Context, configPath string) (statement.Generator, func() error, error)

type ShowCmd struct {
	configPath string
	orgGUID    string
	month      string
	space      string
	service    string
	format     string
	timeout    time.Duration
	factory    GeneratorFactory
	reporters  map[string]StatementHandler
	now        func() time.Time
}

func NewShowCmd(factory GeneratorFactory, reporters map[string]StatementHandler, now func() time.Time) *cobra.Command {
	sc := &ShowCmd{factory: factory, reporters: reporters, now: now}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the billing statement of an organization for a month",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.configPath, "config", "", "Path to the configuration file")
	cmd.Flags().StringVar(&sc.orgGUID, "org", "", "Organization GUID")
	cmd.Flags().StringVar(&sc.month, "month", "", "First day of the month (YYYY-MM-DD), defaults to the current month")
	cmd.Flags().StringVar(&sc.space, "space", "", "Only show resources of this space GUID")
	cmd.Flags().StringVar(&sc.service, "service", "", "Only show resources of this plan GUID")
	cmd.Flags().StringVar(&sc.format, "format", "table", "Output format (table or text)")
	cmd.Flags().DurationVar(&sc.timeout, "timeout", 60*time.Second, "Timeout for fetching the statement data")

	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func (sc *ShowCmd) run(cmd *cobra.Command, _ []string) error {
	reporter, ok := sc.reporters[sc.format]
	if !ok {
		return fmt.Errorf("unsupported format %q", sc.format)
	}

	rangeStart := statement.StartOfMonth(sc.now())
	if sc.month != "" {
		var err error
		rangeStart, err = statement.ParseMonthKey(sc.month)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), sc.timeout)
	defer cancel()

	gen, closeFn, err := sc.factory(ctx, sc.configPath)
	if err != nil {
		return fmt.Errorf("failed to set up statement generator: %w", err)
	}
	defer func() { _ = closeFn() }()

	st, err := gen.Generate(ctx, statement.Query{
		OrgGUID:    sc.orgGUID,
		RangeStart: rangeStart,
		Space:      sc.space,
		Plan:       sc.service,
	})
	if err != nil {
		return fmt.Errorf("failed to generate statement: %w", err)
	}

	return reporter.Handle(st)
}
