package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveWindow(t *testing.T) {
	now := date(2024, 3, 17)

	tests := []struct {
		name         string
		start        time.Time
		expectedStop time.Time
		wantErr      bool
	}{
		{name: "february of a leap year", start: date(2024, 2, 1), expectedStop: date(2024, 3, 1)},
		{name: "january", start: date(2024, 1, 1), expectedStop: date(2024, 2, 1)},
		{name: "december rolls the year", start: date(2023, 12, 1), expectedStop: date(2024, 1, 1)},
		{name: "time of day is dropped", start: time.Date(2024, 4, 1, 13, 45, 0, 0, time.UTC), expectedStop: date(2024, 5, 1)},
		{name: "mid month", start: date(2024, 1, 15), wantErr: true},
		{name: "last day of month", start: date(2024, 1, 31), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := ResolveWindow(tt.start, now)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStop, window.Stop)
			assert.Equal(t, 1, window.Start.Day())
			assert.Len(t, window.Months, 12)
		})
	}
}

func TestResolveWindow_KeepsLocation(t *testing.T) {
	cet := time.FixedZone("CET", 3600)

	window, err := ResolveWindow(time.Date(2024, 2, 1, 23, 30, 0, 0, cet), date(2024, 3, 17))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, cet), window.Start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, cet), window.Stop)
}

func TestPastMonths(t *testing.T) {
	months := PastMonths(time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC), 12)

	require.Len(t, months, 12)
	assert.Equal(t, "2024-03-01", months[0].Key)
	assert.Equal(t, "March 2024", months[0].Label)
	assert.Equal(t, "2024-02-01", months[1].Key)
	assert.Equal(t, "February 2024", months[1].Label)
	assert.Equal(t, "2023-04-01", months[11].Key)
	assert.Equal(t, "April 2023", months[11].Label)

	seen := map[string]bool{}
	for _, m := range months {
		assert.False(t, seen[m.Key], "duplicate key %s", m.Key)
		seen[m.Key] = true
	}
}

func TestMonthKeyAndLabel(t *testing.T) {
	d := date(2024, 9, 1)
	assert.Equal(t, "2024-09-01", MonthKey(d))
	assert.Equal(t, "September 2024", MonthLabel(d))
}

func TestStartOfMonth(t *testing.T) {
	assert.Equal(t, date(2024, 2, 1), StartOfMonth(time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, date(2024, 2, 1), StartOfMonth(date(2024, 2, 1)))
}

func TestParseMonthKey(t *testing.T) {
	d, err := ParseMonthKey("2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 1), d)

	d, err = ParseMonthKey("2024-01-15")
	require.NoError(t, err)
	_, err = ResolveWindow(d, d)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = ParseMonthKey("2024-13-01")
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = ParseMonthKey("")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
