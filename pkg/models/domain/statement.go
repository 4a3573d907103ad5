package domain

import "time"

// ResourceUsageRecord is the aggregated line item for one
// (organization, space, plan, resource name) within a statement.
type ResourceUsageRecord struct {
	ResourceGUID string
	ResourceName string
	ResourceType string
	OrgGUID      string
	SpaceGUID    string
	Space        *Space // nil when the space could not be resolved
	PlanGUID     string
	PlanName     string
	Price        Price
}

type Price struct {
	IncVAT float64
	ExVAT  float64
}

// StatementTotals are summed over every event in the period.
type StatementTotals struct {
	IncVAT float64
	ExVAT  float64
}

type FilterOption struct {
	ID   string
	Name string
}

type MonthOption struct {
	Key   string // 2024-02-01
	Label string // February 2024
}

// PeriodWindow is the half-open [Start, Stop) range a statement covers plus
// the navigable months, most recent first.
type PeriodWindow struct {
	Start  time.Time
	Stop   time.Time
	Months []MonthOption
}

type Statement struct {
	Organization    Organization
	Period          PeriodWindow
	IsCurrentMonth  bool
	Items           []ResourceUsageRecord
	Totals          StatementTotals
	SpaceOptions    []FilterOption
	PlanOptions     []FilterOption
	SelectedSpace   FilterOption
	SelectedPlan    FilterOption
	USDExchangeRate float64
}
