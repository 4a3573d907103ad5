package terminal

import (
	"bytes"
	"testing"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Handle(t *testing.T) {
	st := &domain.Statement{
		Organization: domain.Organization{Name: "acme"},
		Period:       domain.PeriodWindow{Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		Items: []domain.ResourceUsageRecord{
			{ResourceName: "db", PlanName: "Standard", Space: &domain.Space{Name: "prod"}, Price: domain.Price{IncVAT: 18}},
			{ResourceName: "cache", PlanName: "unknown", Price: domain.Price{IncVAT: 1.8}},
		},
		Totals: domain.StatementTotals{IncVAT: 19.8, ExVAT: 16.5},
	}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(st))

	out := buf.String()
	assert.Contains(t, out, "acme: February 2024")
	assert.Contains(t, out, "Total: £19.80 inc VAT (£16.50 ex VAT)")
	assert.Contains(t, out, "- db [Standard] in prod: £18.00")
	assert.Contains(t, out, "- cache [unknown]: £1.80")
}
