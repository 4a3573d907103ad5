package billing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/domain"
)

// amount decodes prices sent either as JSON numbers or as decimal strings.
type amount float64

func (a *amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse amount %q: %w", s, err)
		}
		*a = amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse amount %s: %w", string(data), err)
	}
	*a = amount(f)
	return nil
}

type BillableEvent struct {
	EventGUID     string    `json:"event_guid"`
	EventStart    time.Time `json:"event_start"`
	EventStop     time.Time `json:"event_stop"`
	ResourceGUID  string    `json:"resource_guid"`
	ResourceName  string    `json:"resource_name"`
	ResourceType  string    `json:"resource_type"`
	OrgGUID       string    `json:"org_guid"`
	SpaceGUID     string    `json:"space_guid"`
	PlanGUID      string    `json:"plan_guid"`
	QuotaDefGUID  string    `json:"quota_definition_guid"`
	NumberOfNodes int64     `json:"number_of_nodes"`
	MemoryInMB    int64     `json:"memory_in_mb"`
	StorageInMB   int64     `json:"storage_in_mb"`
	Price         Price     `json:"price"`
}

type Price struct {
	IncVAT  amount           `json:"inc_vat"`
	ExVAT   amount           `json:"ex_vat"`
	Details []PriceComponent `json:"details"`
}

type PriceComponent struct {
	Name         string    `json:"name"`
	PlanName     string    `json:"plan_name"`
	Start        time.Time `json:"start"`
	Stop         time.Time `json:"stop"`
	VatRate      amount    `json:"vat_rate"`
	VatCode      string    `json:"vat_code"`
	CurrencyCode string    `json:"currency_code"`
	CurrencyRate amount    `json:"currency_rate"`
	IncVAT       amount    `json:"inc_vat"`
	ExVAT        amount    `json:"ex_vat"`
}

func (e BillableEvent) ToDomain() domain.BillableEvent {
	details := make([]domain.PriceDetail, 0, len(e.Price.Details))
	for _, d := range e.Price.Details {
		details = append(details, domain.PriceDetail{
			Name:         d.Name,
			PlanName:     d.PlanName,
			Start:        d.Start,
			Stop:         d.Stop,
			VatRate:      float64(d.VatRate),
			VatCode:      d.VatCode,
			CurrencyCode: d.CurrencyCode,
			CurrencyRate: float64(d.CurrencyRate),
			IncVAT:       float64(d.IncVAT),
			ExVAT:        float64(d.ExVAT),
		})
	}

	return domain.BillableEvent{
		EventGUID:     e.EventGUID,
		EventStart:    e.EventStart,
		EventStop:     e.EventStop,
		ResourceGUID:  e.ResourceGUID,
		ResourceName:  e.ResourceName,
		ResourceType:  e.ResourceType,
		OrgGUID:       e.OrgGUID,
		SpaceGUID:     e.SpaceGUID,
		PlanGUID:      e.PlanGUID,
		QuotaDefGUID:  e.QuotaDefGUID,
		NumberOfNodes: e.NumberOfNodes,
		MemoryInMB:    e.MemoryInMB,
		StorageInMB:   e.StorageInMB,
		Price: domain.EventPrice{
			IncVAT:  float64(e.Price.IncVAT),
			ExVAT:   float64(e.Price.ExVAT),
			Details: details,
		},
	}
}

// DecodeEvents reads a JSON array of billable events.
func DecodeEvents(data []byte) ([]domain.BillableEvent, error) {
	var wire []BillableEvent
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode billable events: %w", err)
	}
	events := make([]domain.BillableEvent, 0, len(wire))
	for _, e := range wire {
		events = append(events, e.ToDomain())
	}
	return events, nil
}
