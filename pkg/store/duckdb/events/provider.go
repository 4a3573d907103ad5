package events

import (
	"context"

	"github.com/de-tools/paas-statements/pkg/adapters"
	"github.com/de-tools/paas-statements/pkg/models/domain"
)

// Provider serves billable events from the local store.
type Provider struct {
	store Store
}

func NewProvider(store Store) *Provider {
	return &Provider{store: store}
}

func (p *Provider) GetBillableEvents(ctx context.Context, filter domain.EventFilter) ([]domain.BillableEvent, error) {
	records, err := p.store.GetEvents(ctx, filter.OrgGUIDs, filter.RangeStart, filter.RangeStop)
	if err != nil {
		return nil, err
	}

	events := make([]domain.BillableEvent, 0, len(records))
	for _, record := range records {
		events = append(events, adapters.MapStoreEventRecordToDomain(record))
	}
	return events, nil
}
