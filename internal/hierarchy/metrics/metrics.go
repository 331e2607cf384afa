package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the section hierarchy.
// Tracks mutations per entity and the latency of the nested listing.
type Metrics struct {
	Mutations            *prometheus.CounterVec
	ListSectionsDuration prometheus.Histogram
}

// New creates a new Metrics instance registered against reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Mutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coldcheck_hierarchy_mutations_total",
			Help: "Total number of successful section, unit and contact mutations",
		}, []string{"entity", "op"}),
		ListSectionsDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "coldcheck_list_sections_duration_seconds",
			Help:    "Duration of ListSections operations (full hierarchy read)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementMutation records a successful create, update or delete.
func (m *Metrics) IncrementMutation(entity, op string) {
	m.Mutations.WithLabelValues(entity, op).Inc()
}

// ObserveListSections records the duration of a ListSections operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveListSections(start time.Time) {
	m.ListSectionsDuration.Observe(time.Since(start).Seconds())
}
