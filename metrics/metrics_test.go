package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	require.NotNil(t, m)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestNilMetricsMethodsAreNoops(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.IncEventsInserted()
		m.IncEventsAttested()
		m.IncInsertConflicts()
		m.IncInvariantViolations()
		m.IncIngressDropped("demo")
		m.IncIngressRetried("demo")
		m.IncSubscriberDrops()
	})
}

func TestIncrementsAreObservable(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncEventsInserted()
	m.IncEventsAttested()
	m.IncIngressDropped("demo")

	require.Equal(t, float64(1), testutil.ToFloat64(m.EventsInserted))
	require.Equal(t, float64(1), testutil.ToFloat64(m.EventsAttested))
	require.Equal(t, float64(1), testutil.ToFloat64(m.IngressDropped.WithLabelValues("demo")))
}
