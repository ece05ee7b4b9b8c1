// Package cache provides key/value caching for rendered artifacts.
//
// # Overview
//
// Rendering a large tree is cheap compared to shipping it over the network
// repeatedly, so the CLI and the render service store finished artifacts
// keyed by a hash of the input tree and every option that affects the
// output bytes.
//
// Backends:
//   - [FileCache]: one file per entry under the user cache directory (CLI)
//   - [RedisCache]: shared cache for horizontally scaled render services
//   - [MongoCache]: durable cache with server-side TTL expiry
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are produced by a [Keyer] so that callers never hand-assemble them:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(treeJSON), cache.ArtifactKeyOpts{Format: "svg"})
//
// [ScopedKeyer] prefixes keys for multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached value and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections and other resources.
	Close() error
}

// Default time-to-live values.
const (
	// TTLArtifact is how long rendered artifacts are kept. Artifacts are pure
	// functions of their key, so the TTL only bounds storage growth.
	TTLArtifact = 7 * 24 * time.Hour
)

// ArtifactKeyOpts lists every option that changes the bytes of an artifact.
type ArtifactKeyOpts struct {
	Format        string  `json:"format"`
	Drawer        string  `json:"drawer"`
	Style         string  `json:"style,omitempty"`
	Orientation   string  `json:"orientation"`
	NodeWidth     float64 `json:"node_width"`
	HorizontalGap float64 `json:"horizontal_gap"`
	VerticalGap   float64 `json:"vertical_gap"`
	Radius        float64 `json:"radius,omitempty"`
	Margin        float64 `json:"margin,omitempty"`
	FontSize      float64 `json:"font_size,omitempty"`
	Scale         float64 `json:"scale,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an artifact rendered from the tree
	// whose canonical encoding hashes to treeHash.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// artifactKeyVersion is bumped whenever drawer output changes for the same
// inputs, invalidating all previously cached artifacts.
const artifactKeyVersion = "v1"

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the version, tree hash and options.
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", artifactKeyVersion, treeHash, opts)
}
