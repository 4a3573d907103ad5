package sql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/domain"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// EventsQuery returns one row per price component of every billable event of
// the given organizations starting within the range, ordered by event.
const EventsQuery = `
		SELECT
			e.event_guid,
			e.event_start,
			e.event_stop,
			e.resource_guid,
			e.resource_name,
			e.resource_type,
			e.org_guid,
			e.space_guid,
			e.plan_guid,
			c.name,
			c.plan_name,
			c.vat_code,
			c.vat_rate,
			c.currency_code,
			c.currency_rate,
			c.inc_vat,
			c.ex_vat
		FROM billable_events AS e
		JOIN billable_event_components AS c
			ON c.event_guid = e.event_guid
		WHERE e.event_start >= $1
			AND e.event_start < $2
			AND e.org_guid = ANY($3)
		ORDER BY e.event_start, e.event_guid, c.name`

// EventProvider reads billable events straight from the billing database.
type EventProvider struct {
	db *sql.DB
}

func NewEventProvider(db *sql.DB) *EventProvider {
	return &EventProvider{db: db}
}

func (p *EventProvider) GetBillableEvents(ctx context.Context, filter domain.EventFilter) ([]domain.BillableEvent, error) {
	logger := zerolog.Ctx(ctx)
	if len(filter.OrgGUIDs) == 0 {
		return []domain.BillableEvent{}, nil
	}

	rows, err := p.db.QueryContext(ctx, EventsQuery, filter.RangeStart, filter.RangeStop, pq.Array(filter.OrgGUIDs))
	if err != nil {
		return nil, fmt.Errorf("billable events query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close billable events rows")
		}
	}(rows)

	events := make([]domain.BillableEvent, 0)
	for rows.Next() {
		var (
			ev         domain.BillableEvent
			detail     domain.PriceDetail
			start, end time.Time
		)
		if err := rows.Scan(
			&ev.EventGUID, &start, &end, &ev.ResourceGUID, &ev.ResourceName, &ev.ResourceType,
			&ev.OrgGUID, &ev.SpaceGUID, &ev.PlanGUID,
			&detail.Name, &detail.PlanName, &detail.VatCode, &detail.VatRate,
			&detail.CurrencyCode, &detail.CurrencyRate, &detail.IncVAT, &detail.ExVAT,
		); err != nil {
			return nil, err
		}
		detail.Start, detail.Stop = start, end

		// Components of one event arrive on consecutive rows.
		if n := len(events); n > 0 && events[n-1].EventGUID == ev.EventGUID {
			last := &events[n-1]
			last.Price.Details = append(last.Price.Details, detail)
			last.Price.IncVAT += detail.IncVAT
			last.Price.ExVAT += detail.ExVAT
			continue
		}

		ev.EventStart, ev.EventStop = start, end
		ev.Price = domain.EventPrice{
			IncVAT:  detail.IncVAT,
			ExVAT:   detail.ExVAT,
			Details: []domain.PriceDetail{detail},
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}
