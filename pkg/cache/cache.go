// Package cache provides pluggable result caching for the engines.
//
// Layout, clustering, and analytics results are keyed by the content hash
// of the graph they were computed from plus the operation parameters, so a
// cache entry can never be served for a graph that has since changed.
//
// Four backends are provided:
//   - [MemoryCache]: in-process map, default for embedded use
//   - [FileCache]: directory of JSON entries, default for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts parameterizes a layout cache key.
type LayoutKeyOpts struct {
	Algorithm string
	Params    map[string]any
}

// ClusterKeyOpts parameterizes a clustering cache key.
type ClusterKeyOpts struct {
	Strategy string
	Params   map[string]any
}

// Keyer generates cache keys for engine results. All keys incorporate the
// graph content hash so stale entries are structurally unreachable.
type Keyer interface {
	// GraphKey generates a key for a serialized graph.
	GraphKey(graphHash string) string

	// LayoutKey generates a key for a layout result.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ClusterKey generates a key for a clustering result.
	ClusterKey(graphHash string, opts ClusterKeyOpts) string

	// AnalyticsKey generates a key for an analytics report.
	AnalyticsKey(graphHash string) string
}
