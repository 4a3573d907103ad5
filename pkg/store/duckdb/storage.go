package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ImportsSchema = `
	CREATE TABLE IF NOT EXISTS event_imports (
		source VARCHAR NOT NULL,
		imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		events BIGINT NOT NULL
	);
`
const EventsTableSchema = `
	CREATE TABLE IF NOT EXISTS billable_events (
		event_guid VARCHAR NOT NULL,
		resource_guid VARCHAR,
		resource_name VARCHAR NOT NULL,
		resource_type VARCHAR,
		org_guid VARCHAR NOT NULL,
		space_guid VARCHAR,
		plan_guid VARCHAR,
		event_start TIMESTAMP NOT NULL,
		event_stop TIMESTAMP NOT NULL,
		inc_vat DOUBLE,
		ex_vat DOUBLE,
		details VARCHAR,
		PRIMARY KEY (event_guid)
	);
`

var bootQueries = []string{
	ImportsSchema,
	EventsTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
