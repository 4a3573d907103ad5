package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/store"
	"github.com/de-tools/paas-statements/pkg/store/duckdb"
)

// Store keeps billable events imported from files or the billing API so that
// statements can be produced offline.
type Store interface {
	Add(ctx context.Context, source string, records []store.EventRecord) error
	GetEvents(ctx context.Context, orgGUIDs []string, startTime, endTime time.Time) ([]store.EventRecord, error)
	GetEventStats(ctx context.Context, orgGUID string) (*store.EventStats, error)
	ListImports(ctx context.Context) ([]store.ImportBatch, error)
}

type eventStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &eventStore{db: db}, nil
}

// Add inserts records and logs the batch under source. Both happen in one
// transaction unless the context already carries one.
func (s *eventStore) Add(ctx context.Context, source string, records []store.EventRecord) error {
	if len(records) == 0 {
		return nil
	}

	return duckdb.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.add(ctx, tx, source, records)
	})
}

func (s *eventStore) add(ctx context.Context, tx *sql.Tx, source string, records []store.EventRecord) error {
	query := `
		INSERT OR REPLACE INTO billable_events (
			event_guid, resource_guid, resource_name, resource_type,
			org_guid, space_guid, plan_guid, event_start, event_stop,
			inc_vat, ex_vat, details
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		details, err := json.Marshal(record.Details)
		if err != nil {
			return fmt.Errorf("marshal price details: %w", err)
		}

		_, err = stmt.ExecContext(ctx,
			record.EventGUID,
			record.ResourceGUID,
			record.ResourceName,
			record.ResourceType,
			record.OrgGUID,
			record.SpaceGUID,
			record.PlanGUID,
			record.EventStart,
			record.EventStop,
			record.IncVAT,
			record.ExVAT,
			string(details),
		)
		if err != nil {
			return fmt.Errorf("insert event %s: %w", record.EventGUID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO event_imports (source, imported_at, events) VALUES (?, ?, ?)`,
		source, time.Now().UTC(), len(records),
	)
	if err != nil {
		return fmt.Errorf("record import batch: %w", err)
	}

	return nil
}

func (s *eventStore) GetEvents(
	ctx context.Context,
	orgGUIDs []string,
	startTime, endTime time.Time,
) ([]store.EventRecord, error) {
	if len(orgGUIDs) == 0 {
		return []store.EventRecord{}, nil
	}

	placeholders := make([]string, 0, len(orgGUIDs))
	args := []interface{}{startTime, endTime}
	for _, guid := range orgGUIDs {
		placeholders = append(placeholders, "?")
		args = append(args, guid)
	}

	query := fmt.Sprintf(`
		SELECT event_guid, resource_guid, resource_name, resource_type, org_guid,
			space_guid, plan_guid, event_start, event_stop, inc_vat, ex_vat, details
		FROM billable_events
		WHERE event_start >= ? AND event_start < ? AND org_guid IN (%s)
		ORDER BY event_start, event_guid
	`, strings.Join(placeholders, ","))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()
	return scanEventRows(rows)
}

func (s *eventStore) GetEventStats(ctx context.Context, orgGUID string) (*store.EventStats, error) {
	query := `
		SELECT COUNT(*), MIN(event_start), MAX(event_start)
		FROM billable_events
		WHERE org_guid = ?`

	var (
		total         int64
		first, latest sql.NullTime
	)
	if err := s.db.QueryRowContext(ctx, query, orgGUID).Scan(&total, &first, &latest); err != nil {
		return nil, fmt.Errorf("get event stats: %w", err)
	}

	stats := &store.EventStats{RecordsCount: total}
	if first.Valid {
		t := first.Time
		stats.FirstRecordTime = &t
	}
	if latest.Valid {
		t := latest.Time
		stats.LastRecordTime = &t
	}
	return stats, nil
}

func (s *eventStore) ListImports(ctx context.Context) ([]store.ImportBatch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, imported_at, events FROM event_imports ORDER BY imported_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	batches := make([]store.ImportBatch, 0)
	for rows.Next() {
		var b store.ImportBatch
		if err := rows.Scan(&b.Source, &b.ImportedAt, &b.Events); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func scanEventRows(rows *sql.Rows) ([]store.EventRecord, error) {
	records := make([]store.EventRecord, 0)
	for rows.Next() {
		var (
			record  store.EventRecord
			details sql.NullString
			resGUID sql.NullString
			resType sql.NullString
			space   sql.NullString
			plan    sql.NullString
			inc, ex sql.NullFloat64
		)
		if err := rows.Scan(
			&record.EventGUID, &resGUID, &record.ResourceName, &resType, &record.OrgGUID,
			&space, &plan, &record.EventStart, &record.EventStop, &inc, &ex, &details,
		); err != nil {
			return nil, err
		}
		record.ResourceGUID = resGUID.String
		record.ResourceType = resType.String
		record.SpaceGUID = space.String
		record.PlanGUID = plan.String
		record.IncVAT = inc.Float64
		record.ExVAT = ex.Float64
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &record.Details); err != nil {
				return nil, fmt.Errorf("decode price details of %s: %w", record.EventGUID, err)
			}
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
