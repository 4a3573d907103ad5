package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/paas-statements/pkg/models/domain"
	"github.com/de-tools/paas-statements/pkg/services/billing"
	"github.com/de-tools/paas-statements/pkg/services/directory"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Query identifies a statement. Space and Plan are raw selector values; an
// unknown or empty value selects everything.
type Query struct {
	OrgGUID    string
	RangeStart time.Time
	Space      string
	Plan       string
}

type Generator interface {
	Generate(ctx context.Context, q Query) (*domain.Statement, error)
}

type Options struct {
	Billing   billing.Provider
	Directory directory.Directory
	Metrics   *Metrics
	Now       func() time.Time
}

type service struct {
	billing   billing.Provider
	directory directory.Directory
	metrics   *Metrics
	now       func() time.Time
}

func NewGenerator(opts Options) (Generator, error) {
	if opts.Billing == nil {
		return nil, fmt.Errorf("billing provider is nil")
	}
	if opts.Directory == nil {
		return nil, fmt.Errorf("directory is nil")
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		billing:   opts.Billing,
		directory: opts.Directory,
		metrics:   opts.Metrics,
		now:       opts.Now,
	}, nil
}

func (s *service) Generate(ctx context.Context, q Query) (*domain.Statement, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("org", q.OrgGUID).
		Str("range_start", MonthKey(q.RangeStart)).
		Logger()

	window, err := ResolveWindow(q.RangeStart, s.now())
	if err != nil {
		s.metrics.observeFailure("invalid_period")
		return nil, err
	}

	var (
		org    domain.Organization
		spaces []domain.Space
		events []domain.BillableEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		org, err = s.directory.GetOrganization(gctx, q.OrgGUID)
		if err != nil {
			return fmt.Errorf("get organization %s: %w", q.OrgGUID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		spaces, err = s.directory.ListSpaces(gctx, q.OrgGUID)
		if err != nil {
			return fmt.Errorf("list spaces of %s: %w", q.OrgGUID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = s.billing.GetBillableEvents(gctx, domain.EventFilter{
			RangeStart: window.Start,
			RangeStop:  window.Stop,
			OrgGUIDs:   []string{q.OrgGUID},
		})
		if err != nil {
			return fmt.Errorf("get billable events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.metrics.observeFailure("upstream")
		return nil, err
	}

	st := Assemble(window, events, spaces, q.Space, q.Plan)
	st.Organization = org

	for _, item := range st.Items {
		if item.PlanName == UnknownPlanName {
			logger.Warn().Str("plan", item.PlanGUID).Msg("plan name not found in price details")
		}
		if item.Space == nil {
			logger.Warn().Str("space", item.SpaceGUID).Msg("space not found in organization")
		}
	}

	logger.Debug().
		Int("events", len(events)).
		Int("items", len(st.Items)).
		Str("space", st.SelectedSpace.ID).
		Str("plan", st.SelectedPlan.ID).
		Msg("statement generated")
	s.metrics.observeStatement(len(events), st.Totals)

	return &st, nil
}

// Assemble runs the statement pipeline over already fetched data: normalize,
// aggregate, derive the selectors and apply the space then plan selection.
// Totals cover the whole period regardless of selection.
// This is a PURE function.
func Assemble(
	window domain.PeriodWindow,
	events []domain.BillableEvent,
	spaces []domain.Space,
	rawSpace, rawPlan string,
) domain.Statement {
	agg := Aggregate(Normalize(events), spaces)

	spaceOptions := SpaceOptions(agg.Items)
	selectedSpace, spaceSel := ResolveSelection(spaceOptions, rawSpace)
	items := FilterBySpace(agg.Items, spaceSel)

	planOptions := PlanOptions(items)
	selectedPlan, planSel := ResolveSelection(planOptions, rawPlan)
	items = FilterByPlan(items, planSel)

	return domain.Statement{
		Period:          window,
		IsCurrentMonth:  len(window.Months) > 0 && window.Months[0].Key == MonthKey(window.Start),
		Items:           items,
		Totals:          agg.Totals,
		SpaceOptions:    spaceOptions,
		PlanOptions:     planOptions,
		SelectedSpace:   selectedSpace,
		SelectedPlan:    selectedPlan,
		USDExchangeRate: agg.USDExchangeRate,
	}
}
