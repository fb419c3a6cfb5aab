// Package cache stores rendered artifacts keyed by their inputs.
//
// Rendering a large tree to PDF or PNG shells out to rsvg-convert, so the
// CLI caches finished artifacts on disk. Keys are derived from the document
// hash plus every option that affects the output, which makes entries
// content-addressed: a stale entry is simply never looked up again.
package cache

import (
	"context"
	"time"
)

// DefaultTTL bounds how long artifacts stay on disk.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data; a non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
