package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Consumer metrics
	EventsConsumed     prometheus.Counter
	ConsumeFailures    prometheus.Counter
	Redeliveries       prometheus.Counter
	ConflictsExhausted prometheus.Counter

	// Entry metrics
	EntriesCreated prometheus.Counter
	EntryAmount    prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EventsConsumed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashflow_entry_events_consumed_total",
			Help: "Total number of entry-created notifications applied to a consolidation",
		}),
		ConsumeFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashflow_entry_events_failed_total",
			Help: "Total number of entry-created notifications that failed processing",
		}),
		Redeliveries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashflow_entry_events_redelivered_total",
			Help: "Total number of notifications republished for transport-level retry",
		}),
		ConflictsExhausted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashflow_consolidation_conflicts_exhausted_total",
			Help: "Total number of times the consolidation conflict retry budget ran out",
		}),
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashflow_entries_created_total",
			Help: "Total number of ledger entries recorded",
		}),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashflow_entry_amount",
			Help:    "Ledger entry amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cashflow_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
