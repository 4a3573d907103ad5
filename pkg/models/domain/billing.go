package domain

import "time"

// BillableEvent is one metered usage interval for a resource, as supplied by
// the billing data provider.
type BillableEvent struct {
	EventGUID     string
	EventStart    time.Time
	EventStop     time.Time
	ResourceGUID  string
	ResourceName  string
	ResourceType  string
	OrgGUID       string
	SpaceGUID     string
	PlanGUID      string
	QuotaDefGUID  string
	NumberOfNodes int64
	MemoryInMB    int64
	StorageInMB   int64
	Price         EventPrice
}

type EventPrice struct {
	IncVAT  float64
	ExVAT   float64
	Details []PriceDetail
}

// PriceDetail is one pricing component of an event.
type PriceDetail struct {
	Name         string
	PlanName     string
	Start        time.Time
	Stop         time.Time
	VatRate      float64
	VatCode      string
	CurrencyCode string // USD
	CurrencyRate float64
	IncVAT       float64
	ExVAT        float64
}

type EventFilter struct {
	RangeStart time.Time
	RangeStop  time.Time
	OrgGUIDs   []string
}

type Organization struct {
	GUID      string
	Name      string
	QuotaGUID string
}

type Space struct {
	GUID    string
	Name    string
	OrgGUID string
}
