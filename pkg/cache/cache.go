// Package cache provides content-addressed caching for rendered artifacts.
//
// Rendering a diagram to SVG is deterministic in the diagram file's bytes
// and the output format, so the render path caches artifacts under a
// SHA-256 content key and skips Graphviz entirely on a hit.
//
// Two implementations are provided: [FileCache] stores entries as JSON
// files under a directory (CLI usage), and [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts by key.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given time-to-live.
	// A non-positive ttl stores the value without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact: the output
// format plus the content hash of the diagram file it was rendered from.
func ArtifactKey(format string, content []byte) string {
	return "artifact:" + format + ":" + Hash(content)
}
