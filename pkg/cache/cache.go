// Package cache stores layout snapshots and rendered artifacts between runs.
//
// # Backends
//
//   - [NullCache] never stores anything; used with --no-cache
//   - [FileCache] keeps one JSON file per entry under a directory, the CLI
//     default (~/.cache/boxflow)
//   - [RedisCache] shares entries between `boxflow serve` replicas
//
// [Instrumented] wraps any backend and reports hits, misses and writes to
// the registered observability hooks.
//
// # Keys
//
// Keys are built by a [Keyer] from a content hash and the options that
// influence the result. A layout depends on the document and the viewport; an
// artifact depends on the layout and the output options:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(doc.Hash(), cache.LayoutKeyOpts{Width: 800, Height: 600})
//
// Backends treat undecodable or expired entries as misses.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Default entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)
