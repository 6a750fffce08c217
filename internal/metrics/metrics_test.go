package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestItemWriteCountsRejections(t *testing.T) {
	m := New()

	m.ItemWrite("trip", "ok")
	m.ItemWrite("trip", "rejected")
	m.ItemWrite("list", "rejected")

	require.Equal(t, 1.0, testutil.ToFloat64(m.ItemWrites.WithLabelValues("trip", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ValidationRejections.WithLabelValues("trip")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ValidationRejections.WithLabelValues("list")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ItemWrite("trip", "ok")
	m.ObserveRequest("GET", "/", "200", 0)
}
