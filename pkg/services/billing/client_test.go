package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventsPayload = `[
	{
		"event_guid": "e-1",
		"event_start": "2024-02-01T00:00:00Z",
		"event_stop": "2024-02-02T00:00:00Z",
		"resource_guid": "r-1",
		"resource_name": "db",
		"resource_type": "service",
		"org_guid": "o1",
		"space_guid": "s1",
		"plan_guid": "p1",
		"number_of_nodes": 1,
		"price": {
			"inc_vat": "12.00",
			"ex_vat": "10.00",
			"details": [
				{
					"name": "instance",
					"plan_name": "Standard",
					"currency_code": "USD",
					"currency_rate": "1.25",
					"vat_rate": 0.2,
					"inc_vat": 12,
					"ex_vat": 10
				}
			]
		}
	}
]`

func TestClient_GetBillableEvents(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(eventsPayload))
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{APIEndpoint: srv.URL + "/", AccessToken: "secret"})
	require.NoError(t, err)

	events, err := client.GetBillableEvents(context.Background(), domain.EventFilter{
		RangeStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		RangeStop:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		OrgGUIDs:   []string{"o1"},
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/billable_events", got.URL.Path)
	assert.Equal(t, "2024-02-01", got.URL.Query().Get("range_start"))
	assert.Equal(t, "2024-03-01", got.URL.Query().Get("range_stop"))
	assert.Equal(t, []string{"o1"}, got.URL.Query()["org_guid"])
	assert.Equal(t, "Bearer secret", got.Header.Get("Authorization"))

	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, "db", ev.ResourceName)
	assert.Equal(t, int64(1), ev.NumberOfNodes)
	assert.InDelta(t, 10.0, ev.Price.ExVAT, 1e-9)
	assert.InDelta(t, 12.0, ev.Price.IncVAT, 1e-9)
	require.Len(t, ev.Price.Details, 1)
	assert.Equal(t, "Standard", ev.Price.Details[0].PlanName)
	assert.InDelta(t, 1.25, ev.Price.Details[0].CurrencyRate, 1e-9)
}

func TestClient_GetBillableEvents_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{APIEndpoint: srv.URL})
	require.NoError(t, err)

	_, err = client.GetBillableEvents(context.Background(), domain.EventFilter{OrgGUIDs: []string{"o1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "boom")
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	assert.Error(t, err)
}

func TestDecodeEvents(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
		want    float64
	}{
		{name: "numeric amounts", payload: `[{"price": {"ex_vat": 1.5}}]`, want: 1.5},
		{name: "string amounts", payload: `[{"price": {"ex_vat": "2.25"}}]`, want: 2.25},
		{name: "empty and null amounts", payload: `[{"price": {"ex_vat": "", "inc_vat": null}}]`, want: 0},
		{name: "malformed amount", payload: `[{"price": {"ex_vat": "abc"}}]`, wantErr: true},
		{name: "not an array", payload: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := DecodeEvents([]byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.InDelta(t, tt.want, events[0].Price.ExVAT, 1e-9)
			assert.NotNil(t, events[0].Price.Details)
		})
	}
}
