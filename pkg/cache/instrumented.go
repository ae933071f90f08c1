package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/boxflow/pkg/observability"
)

// Instrumented reports every lookup and write of the wrapped cache to
// [observability.Cache]. Hooks are resolved per call so hooks registered
// after construction are still seen.
type Instrumented struct {
	inner Cache
}

// NewInstrumented wraps c.
func NewInstrumented(c Cache) *Instrumented {
	return &Instrumented{inner: c}
}

// Unwrap returns the wrapped cache.
func (c *Instrumented) Unwrap() Cache { return c.inner }

// Get looks key up and reports a hit or a miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err != nil {
		return data, ok, err
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, KeyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, KeyType(key))
	}
	return data, ok, nil
}

// Set stores data and reports its size.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.inner.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	return nil
}

// Delete removes key.
func (c *Instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Clear clears the wrapped cache if it supports clearing.
func (c *Instrumented) Clear(ctx context.Context) (int, error) {
	if cl, ok := c.inner.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return 0, nil
}

// Close closes the wrapped cache.
func (c *Instrumented) Close() error {
	return c.inner.Close()
}

// KeyType returns the kind of a key built by a [Keyer], such as "layout" or
// "artifact", ignoring any scope prefix.
func KeyType(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i <= 0 {
		return "unknown"
	}
	rest := key[:i]
	if j := strings.LastIndexByte(rest, ':'); j >= 0 {
		rest = rest[j+1:]
	}
	return rest
}

var (
	_ Cache   = (*Instrumented)(nil)
	_ Clearer = (*Instrumented)(nil)
)
