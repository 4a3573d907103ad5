package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/de-tools/paas-statements/pkg/store/duckdb"
	"github.com/de-tools/paas-statements/pkg/store/duckdb/events"
	"github.com/spf13/cobra"
)

type ImportsCmd struct {
	dbPath  string
	orgGUID string
}

func NewImportsCmd() *cobra.Command {
	ic := &ImportsCmd{}
	cmd := &cobra.Command{
		Use:   "imports",
		Short: "List event imports of the local event store",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.dbPath, "db", "statements.db", "Path to the DuckDB event store")
	cmd.Flags().StringVar(&ic.orgGUID, "org", "", "Also print the stored event range of this organization")

	return cmd
}

func (ic *ImportsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ic.dbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	eventStore, err := events.NewStore(db)
	if err != nil {
		return err
	}

	batches, err := eventStore.ListImports(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tIMPORTED AT\tEVENTS")
	for _, b := range batches {
		fmt.Fprintf(w, "%s\t%s\t%d\n", b.Source, b.ImportedAt.Format(time.RFC3339), b.Events)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if ic.orgGUID == "" {
		return nil
	}

	stats, err := eventStore.GetEventStats(ctx, ic.orgGUID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %d events", ic.orgGUID, stats.RecordsCount)
	if stats.FirstRecordTime != nil && stats.LastRecordTime != nil {
		fmt.Fprintf(cmd.OutOrStdout(), " from %s to %s",
			stats.FirstRecordTime.Format(time.DateOnly), stats.LastRecordTime.Format(time.DateOnly))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
