package adapters

import (
	"github.com/de-tools/paas-statements/pkg/models/api"
	"github.com/de-tools/paas-statements/pkg/models/domain"
)

func MapStatementDomainToApi(st domain.Statement) api.Statement {
	out := api.Statement{
		Organization: api.Organization{
			GUID: st.Organization.GUID,
			Name: st.Organization.Name,
		},
		Period: api.Period{
			Start:  st.Period.Start,
			Stop:   st.Period.Stop,
			Months: make([]api.Month, 0, len(st.Period.Months)),
		},
		IsCurrentMonth: st.IsCurrentMonth,
		Items:          make([]api.ResourceUsage, 0, len(st.Items)),
		Totals: api.Price{
			IncVAT: st.Totals.IncVAT,
			ExVAT:  st.Totals.ExVAT,
		},
		Spaces:          MapFilterOptionsDomainToApi(st.SpaceOptions),
		Plans:           MapFilterOptionsDomainToApi(st.PlanOptions),
		SelectedSpace:   api.FilterOption(st.SelectedSpace),
		SelectedPlan:    api.FilterOption(st.SelectedPlan),
		USDExchangeRate: st.USDExchangeRate,
	}

	for _, m := range st.Period.Months {
		out.Period.Months = append(out.Period.Months, api.Month(m))
	}
	for _, item := range st.Items {
		out.Items = append(out.Items, MapResourceUsageDomainToApi(item))
	}
	return out
}

func MapResourceUsageDomainToApi(item domain.ResourceUsageRecord) api.ResourceUsage {
	usage := api.ResourceUsage{
		ResourceGUID: item.ResourceGUID,
		ResourceName: item.ResourceName,
		ResourceType: item.ResourceType,
		OrgGUID:      item.OrgGUID,
		SpaceGUID:    item.SpaceGUID,
		PlanGUID:     item.PlanGUID,
		PlanName:     item.PlanName,
		Price: api.Price{
			IncVAT: item.Price.IncVAT,
			ExVAT:  item.Price.ExVAT,
		},
	}
	if item.Space != nil {
		usage.Space = &api.Space{GUID: item.Space.GUID, Name: item.Space.Name}
	}
	return usage
}

func MapFilterOptionsDomainToApi(options []domain.FilterOption) []api.FilterOption {
	out := make([]api.FilterOption, 0, len(options))
	for _, opt := range options {
		out = append(out, api.FilterOption(opt))
	}
	return out
}
