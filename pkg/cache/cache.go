// Package cache stores rendered artifacts between runs.
//
// Keys are built by a [Keyer] from a dataset hash and the rendering options,
// so any change to the data, the geometry or the palette produces a new key.
// Backends:
//
//   - [NullCache]: never stores anything (--no-cache)
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//   - [RedisCache]: shared cache for the HTTP server
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A zero ttl means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
