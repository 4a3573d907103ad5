package statement

import (
	"github.com/de-tools/paas-statements/pkg/models/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for statement generation. A nil registerer leaves them unregistered.
type Metrics struct {
	Generated *prometheus.CounterVec
	Events    prometheus.Histogram
	IncVAT    prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Generated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "statements",
				Name:      "generated_total",
				Help:      "Statements requested, by outcome",
			},
			[]string{"outcome"},
		),
		Events: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "statements",
				Name:      "billable_events",
				Help:      "Billable events aggregated per statement",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		IncVAT: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "statements",
				Name:      "reported_inc_vat_total",
				Help:      "Sum of statement totals including VAT",
			},
		),
	}
}

func (m *Metrics) observeStatement(events int, totals domain.StatementTotals) {
	m.Generated.WithLabelValues("ok").Inc()
	m.Events.Observe(float64(events))
	if totals.IncVAT > 0 {
		m.IncVAT.Add(totals.IncVAT)
	}
}

func (m *Metrics) observeFailure(reason string) {
	m.Generated.WithLabelValues(reason).Inc()
}
