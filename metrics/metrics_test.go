package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/currency-archive"
	"github.com/malusev998/currency-archive/metrics"
)

func TestMetrics_Observe(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	m := metrics.NewMetrics()

	m.ObserveFetch(currency.OutcomePayload, time.Millisecond)
	m.ObserveFetch(currency.OutcomePayload, time.Millisecond)
	m.ObserveFetch(currency.OutcomeStatusCode, time.Millisecond)
	m.ObserveAggregation(false)
	m.AuditFailed()

	assert.Equal(float64(2), testutil.ToFloat64(m.FetchOutcomesTotal.WithLabelValues("payload")))
	assert.Equal(float64(1), testutil.ToFloat64(m.FetchOutcomesTotal.WithLabelValues("status_code")))
	assert.Equal(float64(0), testutil.ToFloat64(m.FetchOutcomesTotal.WithLabelValues("dropped")))
	assert.Equal(float64(1), testutil.ToFloat64(m.AggregationsTotal.WithLabelValues("failure")))
	assert.Equal(float64(1), testutil.ToFloat64(m.AuditFailuresTotal))
}

func TestMetrics_NilReceiver(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	var m *metrics.Metrics

	assert.NotPanics(func() {
		m.ObserveFetch(currency.OutcomeDropped, time.Second)
		m.ObserveAggregation(true)
		m.ObserveExchange(time.Second)
		m.AuditFailed()
	})
	assert.Nil(m.WriteToTextfile(filepath.Join(t.TempDir(), "metrics.prom")))
}

func TestMetrics_WriteToTextfile(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	m := metrics.NewMetrics()
	path := filepath.Join(t.TempDir(), "archive.prom")

	m.ObserveExchange(250 * time.Millisecond)
	m.ObserveAggregation(true)

	assert.Nil(m.WriteToTextfile(path))

	data, err := os.ReadFile(path)

	assert.Nil(err)
	assert.True(strings.Contains(string(data), `archive_aggregations_total{result="success"} 1`))
	assert.True(strings.Contains(string(data), "archive_exchange_duration_seconds_count 1"))
}
