package statement

import (
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/domain"
)

const (
	MonthKeyLayout   = "2006-01-02"
	monthLabelLayout = "January 2006"
	navigationMonths = 12
)

// ErrInvalidPeriod is returned when a statement is requested for anything
// other than the first day of a month.
var ErrInvalidPeriod = errors.New("invalid statement period")

// ResolveWindow returns the [start, start+1 month) window and the navigation
// months ending at the month containing now. The time of day of start is
// dropped; its day must be 1.
func ResolveWindow(start, now time.Time) (domain.PeriodWindow, error) {
	if start.Day() != 1 {
		return domain.PeriodWindow{}, fmt.Errorf(
			"%w: expected the first of the month, got %s", ErrInvalidPeriod, start.Format(MonthKeyLayout))
	}
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())

	return domain.PeriodWindow{
		Start:  start,
		Stop:   start.AddDate(0, 1, 0),
		Months: PastMonths(now, navigationMonths),
	}, nil
}

// PastMonths lists n months walking back from the month containing now,
// most recent first.
func PastMonths(now time.Time, n int) []domain.MonthOption {
	current := StartOfMonth(now)
	months := make([]domain.MonthOption, 0, n)
	for i := 0; i < n; i++ {
		month := current.AddDate(0, -i, 0)
		months = append(months, domain.MonthOption{
			Key:   MonthKey(month),
			Label: MonthLabel(month),
		})
	}
	return months
}

// StartOfMonth truncates t to midnight UTC on the first of its month.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

func MonthLabel(t time.Time) string {
	return t.Format(monthLabelLayout)
}

// ParseMonthKey parses a YYYY-MM-DD date in UTC. It does not require the date
// to be a first of month; ResolveWindow does.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(MonthKeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidPeriod, key)
	}
	return t, nil
}
