package cache

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/toma1133/travel-app-sub001/internal/calculator"
	"github.com/toma1133/travel-app-sub001/internal/metrics"
)

// ComputeFunc produces a fresh settlement for a trip.
type ComputeFunc func(ctx context.Context) (*calculator.Result, error)

// Loader reads settlements through a SettlementCache and collapses concurrent
// computations for the same trip into one. Cache failures are logged and
// treated as misses.
type Loader struct {
	cache   SettlementCache
	metrics *metrics.Metrics
	group   singleflight.Group

	mu          sync.Mutex
	generations map[string]uint64
}

// NewLoader creates a Loader. m may be nil.
func NewLoader(c SettlementCache, m *metrics.Metrics) *Loader {
	if c == nil {
		c = Nop{}
	}
	return &Loader{cache: c, metrics: m, generations: make(map[string]uint64)}
}

func (l *Loader) generation(tripID string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generations[tripID]
}

// Load returns the cached settlement for tripID or computes and stores it.
func (l *Loader) Load(ctx context.Context, tripID string, compute ComputeFunc) (*calculator.Result, error) {
	cached, ok, err := l.cache.Get(ctx, tripID)
	if err != nil {
		slog.Warn("Settlement cache read failed", "trip_id", tripID, "error", err)
	}
	if ok {
		if l.metrics != nil {
			l.metrics.CacheHit()
		}
		return cached, nil
	}
	if l.metrics != nil {
		l.metrics.CacheMiss()
	}

	v, err, shared := l.group.Do(tripID, func() (any, error) {
		// the computation outlives any single caller that gives up
		ctx := context.WithoutCancel(ctx)
		gen := l.generation(tripID)
		result, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if l.generation(tripID) != gen {
			slog.Debug("Settlement invalidated during computation", "trip_id", tripID)
			return result, nil
		}
		if err := l.cache.Set(ctx, tripID, result); err != nil {
			slog.Warn("Settlement cache write failed", "trip_id", tripID, "error", err)
		}
		// an Invalidate between the check and Set must not leave this entry behind
		if l.generation(tripID) != gen {
			if err := l.cache.Invalidate(ctx, tripID); err != nil {
				slog.Warn("Settlement cache invalidation failed", "trip_id", tripID, "error", err)
			}
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("Settlement computation shared", "trip_id", tripID)
	}
	return v.(*calculator.Result), nil
}

// Invalidate drops the cached settlement for tripID. Callers run it after
// every write that changes the trip's balances. A computation still running
// when Invalidate is called does not store its result.
func (l *Loader) Invalidate(ctx context.Context, tripID string) {
	l.mu.Lock()
	l.generations[tripID]++
	l.mu.Unlock()

	l.group.Forget(tripID)
	if err := l.cache.Invalidate(ctx, tripID); err != nil {
		slog.Warn("Settlement cache invalidation failed", "trip_id", tripID, "error", err)
	}
}
