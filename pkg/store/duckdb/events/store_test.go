package events

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/domain"
	"github.com/de-tools/paas-statements/pkg/models/store"
	"github.com/de-tools/paas-statements/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: filepath.Join(t.TempDir(), "events.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	})
	return db
}

func record(guid, org, name string, start time.Time, exVAT float64) store.EventRecord {
	return store.EventRecord{
		EventGUID:    guid,
		ResourceGUID: "r-" + guid,
		ResourceName: name,
		ResourceType: "service",
		OrgGUID:      org,
		SpaceGUID:    "s1",
		PlanGUID:     "p1",
		EventStart:   start,
		EventStop:    start.Add(time.Hour),
		ExVAT:        exVAT,
		IncVAT:       exVAT * 1.2,
		Details: []store.PriceDetailRecord{
			{Name: "instance", PlanName: "Standard", CurrencyCode: "USD", CurrencyRate: 1.25, ExVAT: exVAT},
		},
	}
}

func TestEventStore_AddAndGetEvents(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(newTestDB(t))
	require.NoError(t, err)

	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	err = s.Add(ctx, "feb.json", []store.EventRecord{
		record("e1", "o1", "db", feb.Add(48*time.Hour), 10),
		record("e2", "o1", "db", feb.Add(24*time.Hour), 5),
		record("e3", "o2", "cache", feb.Add(24*time.Hour), 3),
		record("e4", "o1", "db", mar, 7),
	})
	require.NoError(t, err)

	got, err := s.GetEvents(ctx, []string{"o1"}, feb, mar)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// ordered by event start
	assert.Equal(t, "e2", got[0].EventGUID)
	assert.Equal(t, "e1", got[1].EventGUID)
	assert.True(t, got[0].EventStart.Equal(feb.Add(24*time.Hour)))
	assert.InDelta(t, 5.0, got[0].ExVAT, 1e-9)
	assert.InDelta(t, 6.0, got[0].IncVAT, 1e-9)
	assert.Equal(t, "s1", got[0].SpaceGUID)
	require.Len(t, got[0].Details, 1)
	assert.Equal(t, "Standard", got[0].Details[0].PlanName)
	assert.InDelta(t, 1.25, got[0].Details[0].CurrencyRate, 1e-9)

	both, err := s.GetEvents(ctx, []string{"o1", "o2"}, feb, mar)
	require.NoError(t, err)
	assert.Len(t, both, 3)

	none, err := s.GetEvents(ctx, nil, feb, mar)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEventStore_ReimportReplacesEvents(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(newTestDB(t))
	require.NoError(t, err)

	start := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Add(ctx, "first.json", []store.EventRecord{record("e1", "o1", "db", start, 10)}))
	require.NoError(t, s.Add(ctx, "second.json", []store.EventRecord{record("e1", "o1", "db", start, 12)}))

	got, err := s.GetEvents(ctx, []string{"o1"}, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 12.0, got[0].ExVAT, 1e-9)

	imports, err := s.ListImports(ctx)
	require.NoError(t, err)
	require.Len(t, imports, 2)
	sources := []string{imports[0].Source, imports[1].Source}
	assert.ElementsMatch(t, []string{"first.json", "second.json"}, sources)
	assert.Equal(t, int64(1), imports[0].Events)
}

func TestEventStore_GetEventStats(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(newTestDB(t))
	require.NoError(t, err)

	stats, err := s.GetEventStats(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.RecordsCount)
	assert.Nil(t, stats.FirstRecordTime)
	assert.Nil(t, stats.LastRecordTime)

	first := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Add(ctx, "events.json", []store.EventRecord{
		record("e1", "o1", "db", last, 1),
		record("e2", "o1", "db", first, 1),
		record("e3", "o2", "db", first.AddDate(-1, 0, 0), 1),
	}))

	stats, err = s.GetEventStats(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.RecordsCount)
	require.NotNil(t, stats.FirstRecordTime)
	require.NotNil(t, stats.LastRecordTime)
	assert.True(t, stats.FirstRecordTime.Equal(first))
	assert.True(t, stats.LastRecordTime.Equal(last))
}

func TestEventStore_AddEmptyBatch(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(newTestDB(t))
	require.NoError(t, err)

	require.NoError(t, s.Add(ctx, "empty.json", nil))

	imports, err := s.ListImports(ctx)
	require.NoError(t, err)
	assert.Empty(t, imports)
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestProvider_GetBillableEvents(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(newTestDB(t))
	require.NoError(t, err)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Add(ctx, "feb.json", []store.EventRecord{
		record("e1", "o1", "db", start.Add(time.Hour), 10),
	}))

	events, err := NewProvider(s).GetBillableEvents(ctx, domain.EventFilter{
		RangeStart: start,
		RangeStop:  start.AddDate(0, 1, 0),
		OrgGUIDs:   []string{"o1"},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "db", events[0].ResourceName)
	assert.InDelta(t, 10.0, events[0].Price.ExVAT, 1e-9)
	require.Len(t, events[0].Price.Details, 1)
	assert.Equal(t, "USD", events[0].Price.Details[0].CurrencyCode)
}
