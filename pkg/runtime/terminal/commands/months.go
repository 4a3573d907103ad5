package commands

import (
	"fmt"
	"time"

	"github.com/de-tools/paas-statements/pkg/services/statement"
	"github.com/spf13/cobra"
)

func NewMonthsCmd(now func() time.Time) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "months",
		Short: "List the months statements can be navigated to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			for _, m := range statement.PastMonths(now(), count) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Key, m.Label)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 12, "Number of months to list")
	return cmd
}
