// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: JSON entries under a local directory, used by the CLI
//   - [RedisCache]: a shared Redis server, used by the HTTP service
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// # Keys
//
// A [Keyer] derives keys from content hashes so identical inputs share
// entries across processes:
//
//	dataHash := cache.Hash(frameJSON)
//	key := keyer.LayoutKey(dataHash, cache.LayoutKeyOpts{Width: 800, Height: 600})
//
// [ScopedKeyer] prefixes every key, which separates tenants or test runs
// that share one Redis or MongoDB instance.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
// A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
