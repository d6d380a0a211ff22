package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.SettlementsComputed.Inc()
	m.SkippedRecords.WithLabelValues("expense", "unknown_payer").Inc()

	assert.Equal(t, 2.0, counterValue(t, reg, "travel_settlement_cache_requests_total", map[string]string{"result": "hit"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "travel_settlement_cache_requests_total", map[string]string{"result": "miss"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "travel_settlements_computed_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "travel_settlement_skipped_records_total",
		map[string]string{"kind": "expense", "reason": "unknown_payer"}))
}

func TestNew_NilRegisterer(t *testing.T) {
	assert.NotPanics(t, func() {
		New(nil).CacheMiss()
		New(nil).CacheMiss()
	})
}
