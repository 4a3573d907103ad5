package store

import "time"

type EventRecord struct {
	EventGUID    string
	ResourceGUID string
	ResourceName string
	ResourceType string
	OrgGUID      string
	SpaceGUID    string
	PlanGUID     string
	EventStart   time.Time
	EventStop    time.Time
	IncVAT       float64
	ExVAT        float64
	Details      []PriceDetailRecord
}

// PriceDetailRecord is serialized into the details column of an event.
type PriceDetailRecord struct {
	Name         string    `json:"name"`
	PlanName     string    `json:"plan_name"`
	Start        time.Time `json:"start"`
	Stop         time.Time `json:"stop"`
	VatRate      float64   `json:"vat_rate"`
	VatCode      string    `json:"vat_code"`
	CurrencyCode string    `json:"currency_code"`
	CurrencyRate float64   `json:"currency_rate"`
	IncVAT       float64   `json:"inc_vat"`
	ExVAT        float64   `json:"ex_vat"`
}

type ImportBatch struct {
	Source     string
	ImportedAt time.Time
	Events     int64
}

type EventStats struct {
	RecordsCount    int64
	FirstRecordTime *time.Time
	LastRecordTime  *time.Time
}
