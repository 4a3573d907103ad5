package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/paas-statements/pkg/adapters"
	"github.com/de-tools/paas-statements/pkg/models/store"
	"github.com/de-tools/paas-statements/pkg/services/billing"
	"github.com/de-tools/paas-statements/pkg/store/duckdb"
	"github.com/de-tools/paas-statements/pkg/store/duckdb/events"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	file   string
	dbPath string
}

func NewImportCmd() *cobra.Command {
	ic := &ImportCmd{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import billable events from a JSON file into the local event store",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.file, "file", "", "JSON file holding an array of billable events")
	cmd.Flags().StringVar(&ic.dbPath, "db", "statements.db", "Path to the DuckDB event store")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	data, err := os.ReadFile(ic.file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ic.file, err)
	}
	evs, err := billing.DecodeEvents(data)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ic.dbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close event store")
		}
	}()

	eventStore, err := events.NewStore(db)
	if err != nil {
		return err
	}

	records := make([]store.EventRecord, 0, len(evs))
	for _, ev := range evs {
		records = append(records, adapters.MapDomainBillableEventToStoreRecord(ev))
	}
	if err := eventStore.Add(ctx, filepath.Base(ic.file), records); err != nil {
		return fmt.Errorf("failed to import events: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d events from %s into %s\n", len(records), ic.file, ic.dbPath)
	return nil
}
