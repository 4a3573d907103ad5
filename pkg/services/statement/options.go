package statement

import (
	"sort"

	"github.com/de-tools/paas-statements/pkg/models/domain"
)

const (
	AllOptionID   = "none" // id of the synthetic "do not restrict" option
	AllSpacesName = "All spaces"
	AllPlansName  = "All services"
)

var (
	AllSpaces = domain.FilterOption{ID: AllOptionID, Name: AllSpacesName}
	AllPlans  = domain.FilterOption{ID: AllOptionID, Name: AllPlansName}
)

// SpaceOptions lists the distinct spaces of items sorted by name, with
// AllSpaces first. Unresolved spaces are named by their GUID.
func SpaceOptions(items []domain.ResourceUsageRecord) []domain.FilterOption {
	return buildOptions(AllSpaces, items, func(item domain.ResourceUsageRecord) domain.FilterOption {
		name := item.SpaceGUID
		if item.Space != nil {
			name = item.Space.Name
		}
		return domain.FilterOption{ID: item.SpaceGUID, Name: name}
	})
}

// PlanOptions lists the distinct plans of items sorted by name, with
// AllPlans first.
func PlanOptions(items []domain.ResourceUsageRecord) []domain.FilterOption {
	return buildOptions(AllPlans, items, func(item domain.ResourceUsageRecord) domain.FilterOption {
		return domain.FilterOption{ID: item.PlanGUID, Name: item.PlanName}
	})
}

func buildOptions(
	sentinel domain.FilterOption,
	items []domain.ResourceUsageRecord,
	option func(domain.ResourceUsageRecord) domain.FilterOption,
) []domain.FilterOption {
	seen := make(map[string]struct{}, len(items))
	options := make([]domain.FilterOption, 0, len(items))
	for _, item := range items {
		opt := option(item)
		if _, ok := seen[opt.ID]; ok {
			continue
		}
		seen[opt.ID] = struct{}{}
		options = append(options, opt)
	}

	// Equal names keep first-seen order.
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Name < options[j].Name
	})

	return append([]domain.FilterOption{sentinel}, options...)
}
