package api

import "time"

type Price struct {
	IncVAT float64 `json:"inc_vat"`
	ExVAT  float64 `json:"ex_vat"`
}

type Space struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
}

type ResourceUsage struct {
	ResourceGUID string `json:"resource_guid,omitempty"`
	ResourceName string `json:"resource_name"`
	ResourceType string `json:"resource_type"`
	OrgGUID      string `json:"org_guid"`
	SpaceGUID    string `json:"space_guid"`
	Space        *Space `json:"space,omitempty"`
	PlanGUID     string `json:"plan_guid"`
	PlanName     string `json:"plan_name"`
	Price        Price  `json:"price"`
}

type FilterOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Month struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type Period struct {
	Start  time.Time `json:"range_start"`
	Stop   time.Time `json:"range_stop"`
	Months []Month   `json:"months"`
}

type Organization struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
}

type Statement struct {
	Organization    Organization    `json:"organization"`
	Period          Period          `json:"period"`
	IsCurrentMonth  bool            `json:"is_current_month"`
	Items           []ResourceUsage `json:"items"`
	Totals          Price           `json:"totals"`
	Spaces          []FilterOption  `json:"spaces"`
	Plans           []FilterOption  `json:"plans"`
	SelectedSpace   FilterOption    `json:"selected_space"`
	SelectedPlan    FilterOption    `json:"selected_plan"`
	USDExchangeRate float64         `json:"usd_exchange_rate"`
}

type Error struct {
	Error string `json:"error"`
}
