package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for report ingestion, range queries and exports.
type Metrics struct {
	ReportsSubmitted   prometheus.Counter
	ReportsDeleted     prometheus.Counter
	EntriesSubmitted   prometheus.Counter
	RangeQueries       *prometheus.CounterVec
	RangeFailedDays    prometheus.Counter
	RangeQueryDuration prometheus.Histogram
	ExportedRows       *prometheus.CounterVec
}

// New creates a new Metrics instance registered against reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReportsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "coldcheck_reports_submitted_total",
			Help: "Total number of reports persisted",
		}),
		ReportsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "coldcheck_reports_deleted_total",
			Help: "Total number of reports deleted",
		}),
		EntriesSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "coldcheck_entries_submitted_total",
			Help: "Total number of unit entries persisted with reports",
		}),
		RangeQueries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coldcheck_range_queries_total",
			Help: "Total number of range queries by outcome (ok, partial, failed)",
		}, []string{"outcome"}),
		RangeFailedDays: f.NewCounter(prometheus.CounterOpts{
			Name: "coldcheck_range_failed_days_total",
			Help: "Total number of days that could not be fetched during range queries",
		}),
		RangeQueryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "coldcheck_range_query_duration_seconds",
			Help:    "Duration of range queries across all requested days",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ExportedRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "coldcheck_exported_rows_total",
			Help: "Total number of data rows written by exports",
		}, []string{"format"}),
	}
}

func (m *Metrics) IncrementSubmitted(entries int) {
	m.ReportsSubmitted.Inc()
	m.EntriesSubmitted.Add(float64(entries))
}

func (m *Metrics) IncrementDeleted() {
	m.ReportsDeleted.Inc()
}

// ObserveRangeQuery records one range query and how many of its days failed.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRangeQuery(start time.Time, outcome string, failedDays int) {
	m.RangeQueries.WithLabelValues(outcome).Inc()
	m.RangeFailedDays.Add(float64(failedDays))
	m.RangeQueryDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) AddExportedRows(format string, rows int) {
	m.ExportedRows.WithLabelValues(format).Add(float64(rows))
}
