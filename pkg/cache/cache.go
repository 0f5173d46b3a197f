// Package cache stores compiled scripts and rendered previews keyed by the
// content hash of the graph they came from.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared snappy-compressed entries, for the API server
//
// Keys are produced by a [Keyer] so every backend agrees on the layout:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ScriptKey(graphHash, cache.ScriptKeyOpts{Standalone: true})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend
// itself failed. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes for cached artifacts.
const (
	ScriptTTL  = 7 * 24 * time.Hour
	PreviewTTL = 24 * time.Hour
)
