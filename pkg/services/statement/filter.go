package statement

import "github.com/de-tools/paas-statements/pkg/models/domain"

// Selection is a filter choice: either everything, or one specific id.
type Selection struct {
	id  string
	all bool
}

func AllSelection() Selection {
	return Selection{all: true}
}

func Only(id string) Selection {
	return Selection{id: id}
}

func (s Selection) IsAll() bool {
	return s.all
}

// ID returns the selected id, or AllOptionID for AllSelection.
func (s Selection) ID() string {
	if s.all {
		return AllOptionID
	}
	return s.id
}

// ResolveSelection matches raw against the ids of the options following the
// sentinel, which must be options[0]. An empty or unknown raw value selects
// everything.
func ResolveSelection(options []domain.FilterOption, raw string) (domain.FilterOption, Selection) {
	if len(options) == 0 {
		return domain.FilterOption{ID: AllOptionID}, AllSelection()
	}
	if raw != "" {
		for _, opt := range options[1:] {
			if opt.ID == raw {
				return opt, Only(opt.ID)
			}
		}
	}
	return options[0], AllSelection()
}

func FilterBySpace(items []domain.ResourceUsageRecord, sel Selection) []domain.ResourceUsageRecord {
	return filter(items, sel, func(item domain.ResourceUsageRecord) string { return item.SpaceGUID })
}

func FilterByPlan(items []domain.ResourceUsageRecord, sel Selection) []domain.ResourceUsageRecord {
	return filter(items, sel, func(item domain.ResourceUsageRecord) string { return item.PlanGUID })
}

func filter(
	items []domain.ResourceUsageRecord,
	sel Selection,
	attr func(domain.ResourceUsageRecord) string,
) []domain.ResourceUsageRecord {
	if sel.IsAll() {
		return items
	}
	out := make([]domain.ResourceUsageRecord, 0, len(items))
	for _, item := range items {
		if attr(item) == sel.id {
			out = append(out, item)
		}
	}
	return out
}
