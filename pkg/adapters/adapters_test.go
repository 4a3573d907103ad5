package adapters

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRecordMapping(t *testing.T) {
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	ev := domain.BillableEvent{
		EventGUID:    "e1",
		EventStart:   start,
		EventStop:    start.Add(time.Hour),
		ResourceGUID: "r1",
		ResourceName: "db",
		ResourceType: "postgres",
		OrgGUID:      "o1",
		SpaceGUID:    "s1",
		PlanGUID:     "p1",
		Price: domain.EventPrice{
			IncVAT: 12,
			ExVAT:  10,
			Details: []domain.PriceDetail{
				{Name: "instance", PlanName: "Standard", CurrencyCode: "USD", CurrencyRate: 1.25, ExVAT: 10, IncVAT: 12},
			},
		},
	}

	record := MapDomainBillableEventToStoreRecord(ev)
	assert.Equal(t, "e1", record.EventGUID)
	assert.Equal(t, 10.0, record.ExVAT)
	require.Len(t, record.Details, 1)
	assert.Equal(t, "Standard", record.Details[0].PlanName)

	// store records do not keep node or memory sizes
	assert.Equal(t, ev, MapStoreEventRecordToDomain(record))
}

func TestMapStatementDomainToApi(t *testing.T) {
	st := domain.Statement{
		Organization: domain.Organization{GUID: "o1", Name: "acme"},
		Period: domain.PeriodWindow{
			Start:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Stop:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Months: []domain.MonthOption{{Key: "2024-02-01", Label: "February 2024"}},
		},
		Items: []domain.ResourceUsageRecord{
			{ResourceName: "db", SpaceGUID: "s1", Space: &domain.Space{GUID: "s1", Name: "prod"}, PlanName: "Standard"},
			{ResourceName: "cache", SpaceGUID: "s2", PlanName: "micro"},
		},
		Totals:          domain.StatementTotals{IncVAT: 18, ExVAT: 15},
		SpaceOptions:    []domain.FilterOption{{ID: "none", Name: "All spaces"}},
		PlanOptions:     []domain.FilterOption{{ID: "none", Name: "All services"}},
		SelectedSpace:   domain.FilterOption{ID: "none", Name: "All spaces"},
		SelectedPlan:    domain.FilterOption{ID: "none", Name: "All services"},
		USDExchangeRate: 1.25,
	}

	out := MapStatementDomainToApi(st)
	require.Len(t, out.Items, 2)
	require.NotNil(t, out.Items[0].Space)
	assert.Equal(t, "prod", out.Items[0].Space.Name)
	assert.Nil(t, out.Items[1].Space)
	assert.Equal(t, "2024-02-01", out.Period.Months[0].Key)
	assert.Equal(t, "All spaces", out.SelectedSpace.Name)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"usd_exchange_rate":1.25`)
	assert.Contains(t, string(data), `"range_start":"2024-02-01T00:00:00Z"`)
	assert.NotContains(t, string(data), `"space":null`)
}
