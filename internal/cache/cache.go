// Package cache stores computed settlements per trip so repeated reads skip
// loading every expense. Entries are dropped whenever a trip's records change.
package cache

import (
	"context"

	"github.com/toma1133/travel-app-sub001/internal/calculator"
)

// SettlementCache stores settlement results keyed by trip ID.
type SettlementCache interface {
	// Get returns the cached result. The bool is false on a miss.
	Get(ctx context.Context, tripID string) (*calculator.Result, bool, error)
	Set(ctx context.Context, tripID string, result *calculator.Result) error
	Invalidate(ctx context.Context, tripID string) error
}

// Nop is a SettlementCache that never stores anything. It is used when no
// redis address is configured.
type Nop struct{}

func (Nop) Get(context.Context, string) (*calculator.Result, bool, error) {
	return nil, false, nil
}

func (Nop) Set(context.Context, string, *calculator.Result) error {
	return nil
}

func (Nop) Invalidate(context.Context, string) error {
	return nil
}
