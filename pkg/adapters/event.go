package adapters

import (
	"github.com/de-tools/paas-statements/pkg/models/domain"
	"github.com/de-tools/paas-statements/pkg/models/store"
)

func MapStoreEventRecordToDomain(record store.EventRecord) domain.BillableEvent {
	details := make([]domain.PriceDetail, 0, len(record.Details))
	for _, d := range record.Details {
		details = append(details, domain.PriceDetail{
			Name:         d.Name,
			PlanName:     d.PlanName,
			Start:        d.Start,
			Stop:         d.Stop,
			VatRate:      d.VatRate,
			VatCode:      d.VatCode,
			CurrencyCode: d.CurrencyCode,
			CurrencyRate: d.CurrencyRate,
			IncVAT:       d.IncVAT,
			ExVAT:        d.ExVAT,
		})
	}

	return domain.BillableEvent{
		EventGUID:    record.EventGUID,
		EventStart:   record.EventStart,
		EventStop:    record.EventStop,
		ResourceGUID: record.ResourceGUID,
		ResourceName: record.ResourceName,
		ResourceType: record.ResourceType,
		OrgGUID:      record.OrgGUID,
		SpaceGUID:    record.SpaceGUID,
		PlanGUID:     record.PlanGUID,
		Price: domain.EventPrice{
			IncVAT:  record.IncVAT,
			ExVAT:   record.ExVAT,
			Details: details,
		},
	}
}

func MapDomainBillableEventToStoreRecord(event domain.BillableEvent) store.EventRecord {
	details := make([]store.PriceDetailRecord, 0, len(event.Price.Details))
	for _, d := range event.Price.Details {
		details = append(details, store.PriceDetailRecord{
			Name:         d.Name,
			PlanName:     d.PlanName,
			Start:        d.Start,
			Stop:         d.Stop,
			VatRate:      d.VatRate,
			VatCode:      d.VatCode,
			CurrencyCode: d.CurrencyCode,
			CurrencyRate: d.CurrencyRate,
			IncVAT:       d.IncVAT,
			ExVAT:        d.ExVAT,
		})
	}

	return store.EventRecord{
		EventGUID:    event.EventGUID,
		ResourceGUID: event.ResourceGUID,
		ResourceName: event.ResourceName,
		ResourceType: event.ResourceType,
		OrgGUID:      event.OrgGUID,
		SpaceGUID:    event.SpaceGUID,
		PlanGUID:     event.PlanGUID,
		EventStart:   event.EventStart,
		EventStop:    event.EventStop,
		IncVAT:       event.Price.IncVAT,
		ExVAT:        event.Price.ExVAT,
		Details:      details,
	}
}
