package billing

import (
	"context"

	"github.com/de-tools/paas-statements/pkg/models/domain"
)

// Provider supplies the billable events of the given organizations whose
// interval starts within [RangeStart, RangeStop).
type Provider interface {
	GetBillableEvents(ctx context.Context, filter domain.EventFilter) ([]domain.BillableEvent, error)
}
