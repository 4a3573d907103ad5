package statement

import "github.com/de-tools/paas-statements/pkg/models/domain"

type eventOpt func(*domain.BillableEvent)

func event(org, space, plan, name string, incVAT, exVAT float64, opts ...eventOpt) domain.BillableEvent {
	ev := domain.BillableEvent{
		OrgGUID:      org,
		SpaceGUID:    space,
		PlanGUID:     plan,
		ResourceName: name,
		ResourceType: "service",
		Price: domain.EventPrice{
			IncVAT: incVAT,
			ExVAT:  exVAT,
		},
	}
	for _, opt := range opts {
		opt(&ev)
	}
	return ev
}

func withDetail(currency string, rate float64, planName string) eventOpt {
	return func(ev *domain.BillableEvent) {
		ev.Price.Details = append(ev.Price.Details, domain.PriceDetail{
			CurrencyCode: currency,
			CurrencyRate: rate,
			PlanName:     planName,
		})
	}
}

func withResourceType(t string) eventOpt {
	return func(ev *domain.BillableEvent) {
		ev.ResourceType = t
	}
}
