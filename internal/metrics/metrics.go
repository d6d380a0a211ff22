// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "travel"

// Metrics groups the collectors updated by the service layer.
type Metrics struct {
	SettlementsComputed prometheus.Counter
	SkippedRecords      *prometheus.CounterVec
	CacheRequests       *prometheus.CounterVec
	RPCRequests         *prometheus.CounterVec
	RPCDuration         *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which tests use to avoid global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SettlementsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_computed_total",
			Help:      "Settlements computed from trip records (cache misses included).",
		}),
		SkippedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_skipped_records_total",
			Help:      "Expenses and payments left out of a settlement, by kind and reason.",
		}, []string{"kind", "reason"}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_cache_requests_total",
			Help:      "Settlement cache lookups by result.",
		}, []string{"result"}),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Unary RPCs handled, by procedure and connect code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Unary RPC latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}
	if reg != nil {
		reg.MustRegister(m.SettlementsComputed, m.SkippedRecords, m.CacheRequests, m.RPCRequests, m.RPCDuration)
	}
	return m
}

// CacheHit records a settlement served from cache.
func (m *Metrics) CacheHit() { m.CacheRequests.WithLabelValues("hit").Inc() }

// CacheMiss records a settlement that had to be computed.
func (m *Metrics) CacheMiss() { m.CacheRequests.WithLabelValues("miss").Inc() }
