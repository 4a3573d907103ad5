package statement

import (
	"strings"

	"github.com/de-tools/paas-statements/pkg/models/domain"
)

const (
	UnknownPlanName    = "unknown"
	ReportingCurrency  = "USD"
	defaultUSDRate     = 1.0
	freePlanMarker     = "Free"
	freePlanRebranding = "micro"
)

type recordKey struct {
	orgGUID      string
	spaceGUID    string
	planGUID     string
	resourceName string
}

func keyOf(ev domain.BillableEvent) recordKey {
	return recordKey{
		orgGUID:      ev.OrgGUID,
		spaceGUID:    ev.SpaceGUID,
		planGUID:     ev.PlanGUID,
		resourceName: ev.ResourceName,
	}
}

// Aggregation is the result of folding a month of normalized events.
type Aggregation struct {
	Items           []domain.ResourceUsageRecord
	Totals          domain.StatementTotals
	USDExchangeRate float64
}

// Aggregate groups events into one record per (org, space, plan, resource
// name). The first event of a group fixes its descriptive fields; later events
// only add to the price. Items keep first-seen order.
// This is a PURE function.
func Aggregate(events []domain.BillableEvent, spaces []domain.Space) Aggregation {
	index := make(map[recordKey]int, len(events))
	items := make([]domain.ResourceUsageRecord, 0)
	rate := defaultUSDRate

	for _, ev := range events {
		if r, ok := usdRate(ev.Price.Details); ok {
			rate = r
		}

		key := keyOf(ev)
		if i, ok := index[key]; ok {
			items[i].Price.ExVAT += ev.Price.ExVAT
			items[i].Price.IncVAT += ev.Price.IncVAT
			continue
		}

		index[key] = len(items)
		items = append(items, newRecord(ev, spaces))
	}

	return Aggregation{
		Items:           items,
		Totals:          Totals(events),
		USDExchangeRate: rate,
	}
}

// Totals sums the raw event prices, independently of any grouping.
func Totals(events []domain.BillableEvent) domain.StatementTotals {
	var totals domain.StatementTotals
	for _, ev := range events {
		totals.IncVAT += ev.Price.IncVAT
		totals.ExVAT += ev.Price.ExVAT
	}
	return totals
}

func newRecord(ev domain.BillableEvent, spaces []domain.Space) domain.ResourceUsageRecord {
	return domain.ResourceUsageRecord{
		ResourceGUID: ev.ResourceGUID,
		ResourceName: ev.ResourceName,
		ResourceType: ev.ResourceType,
		OrgGUID:      ev.OrgGUID,
		SpaceGUID:    ev.SpaceGUID,
		Space:        findSpace(spaces, ev.SpaceGUID),
		PlanGUID:     ev.PlanGUID,
		PlanName:     ResolvePlanName(ev.Price.Details),
		Price: domain.Price{
			IncVAT: ev.Price.IncVAT,
			ExVAT:  ev.Price.ExVAT,
		},
	}
}

// ResolvePlanName returns the first non-empty plan name among details after
// rebranding, or UnknownPlanName.
func ResolvePlanName(details []domain.PriceDetail) string {
	for _, d := range details {
		if name := RebrandPlanName(d.PlanName); name != "" {
			return name
		}
	}
	return UnknownPlanName
}

// RebrandPlanName presents free-tier plans as "micro".
func RebrandPlanName(name string) string {
	return strings.ReplaceAll(name, freePlanMarker, freePlanRebranding)
}

// usdRate returns the rate of the last USD detail in details.
func usdRate(details []domain.PriceDetail) (float64, bool) {
	var (
		rate  float64
		found bool
	)
	for _, d := range details {
		if d.CurrencyCode == ReportingCurrency {
			rate, found = d.CurrencyRate, true
		}
	}
	return rate, found
}

func findSpace(spaces []domain.Space, guid string) *domain.Space {
	for i := range spaces {
		if spaces[i].GUID == guid {
			s := spaces[i]
			return &s
		}
	}
	return nil
}
