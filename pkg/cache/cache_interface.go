package cache

import (
	"context"
	"time"
)

// Cache is the contract of the shared key/value store (Redis in production).
// It only backs login throttling and health checks; catalog and stock data are never cached.
type Cache interface {
	// Get unmarshals the value at key into dest.
	// found=false on a miss, dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error

	// Increment atomically adds 1 to the counter at key and returns the new value.
	Increment(ctx context.Context, key string) (int64, error)

	Expire(ctx context.Context, key string, ttl time.Duration) error
}
