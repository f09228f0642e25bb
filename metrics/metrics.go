package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	currency "github.com/malusev998/currency-archive"
)

// Metrics methods are no-ops on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	FetchOutcomesTotal *prometheus.CounterVec
	FetchDuration      prometheus.Histogram
	AggregationsTotal  *prometheus.CounterVec
	ExchangeDuration   prometheus.Histogram
	AuditFailuresTotal prometheus.Counter
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		FetchOutcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "archive_fetch_outcomes_total",
				Help: "Total number of archive fetches by outcome",
			},
			[]string{"outcome"},
		),

		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "archive_fetch_duration_seconds",
				Help:    "Duration of a single archive day fetch in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		AggregationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "archive_aggregations_total",
				Help: "Total number of aggregation passes by result",
			},
			[]string{"result"},
		),

		ExchangeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "archive_exchange_duration_seconds",
				Help:    "Duration of the concurrent fetch batch in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		AuditFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "archive_audit_failures_total",
				Help: "Total number of payloads that could not be appended to the audit log",
			},
		),
	}
}

func (m *Metrics) ObserveFetch(kind currency.OutcomeKind, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.FetchOutcomesTotal.WithLabelValues(kind.String()).Inc()
	m.FetchDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveAggregation(ok bool) {
	if m == nil {
		return
	}

	result := "failure"

	if ok {
		result = "success"
	}

	m.AggregationsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveExchange(elapsed time.Duration) {
	if m == nil {
		return
	}

	m.ExchangeDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) AuditFailed() {
	if m == nil {
		return
	}

	m.AuditFailuresTotal.Inc()
}

// WriteToTextfile dumps the collected metrics in the node_exporter textfile format.
func (m *Metrics) WriteToTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}

	return prometheus.WriteToTextfile(path, m.registry)
}
