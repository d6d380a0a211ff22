package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/toma1133/travel-app-sub001/internal/calculator"
)

const keyPrefix = "travel:settlement:"

// Redis is a SettlementCache backed by redis. Results are stored as JSON with
// a TTL so an entry missed by invalidation still ages out.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

var _ SettlementCache = (*Redis)(nil)

// NewRedis wraps an existing client.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func key(tripID string) string {
	return keyPrefix + tripID
}

func (r *Redis) Get(ctx context.Context, tripID string) (*calculator.Result, bool, error) {
	data, err := r.client.Get(ctx, key(tripID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read settlement cache: %w", err)
	}

	var result calculator.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached settlement for trip %s: %w", tripID, err)
	}
	return &result, true, nil
}

func (r *Redis) Set(ctx context.Context, tripID string, result *calculator.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode settlement: %w", err)
	}
	if err := r.client.Set(ctx, key(tripID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write settlement cache: %w", err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, tripID string) error {
	if err := r.client.Del(ctx, key(tripID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate settlement cache: %w", err)
	}
	return nil
}
