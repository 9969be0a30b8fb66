// Package cache stores computed layouts and rendered artifacts.
//
// # Overview
//
// Layering a large project is cheap but not free, and rendering through
// Graphviz is slow. Both results only depend on the graph structure and the
// options used, so they are cached under content-derived keys:
//
//	key := keyer.LayoutKey(graphHash, cache.LayoutKeyOpts{NodeSpacingX: 200, ...})
//	data, hit, err := c.Get(ctx, key)
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the user cache directory (CLI)
//   - [MemoryCache]: bounded in-process LRU (HTTP server default)
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: disables caching
//
// # Keys
//
// [DefaultKeyer] derives keys as "<kind>:<sha256 of the inputs>". Wrap it in
// a [ScopedKeyer] to give a deployment its own namespace in a shared Redis.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiration.
//
// Implementations must be safe for concurrent use. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	// Get returns the value stored under key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a layer and position assignment.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered diagram.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the layout parameters that affect positions.
type LayoutKeyOpts struct {
	NodeSpacingX  float64 `json:"node_spacing_x"`
	LayerSpacingY float64 `json:"layer_spacing_y"`
	OffsetX       float64 `json:"offset_x"`
	OffsetY       float64 `json:"offset_y"`
}

// ArtifactKeyOpts holds the render parameters that affect output bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Detailed    bool    `json:"detailed,omitempty"`
	Directories bool    `json:"directories,omitempty"`
	Pinned      bool    `json:"pinned,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// DefaultKeyer builds "layout:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey hashes the graph hash together with the layout options.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return kindKey("layout", graphHash, opts)
}

// ArtifactKey hashes the graph hash together with the render options.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return kindKey("artifact", graphHash, opts)
}

// NullCache stores nothing. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }
