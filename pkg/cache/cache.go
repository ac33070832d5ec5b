// Package cache provides pluggable caching for rendered figures and
// layouts. A file-based cache backs CLI usage, a Redis cache backs the HTTP
// server, and a null cache disables caching entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is the storage interface. A zero ttl means no expiration.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given time to live.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// Keyer generates cache keys for the plotting pipeline.
type Keyer interface {
	// DatasetKey identifies an imported dataset by content hash.
	DatasetKey(contentHash string) string

	// FigureKey identifies a rendered figure by dataset hash and the
	// options that shaped it.
	FigureKey(datasetHash string, opts FigureKeyOpts) string
}

// FigureKeyOpts captures everything that changes a rendered figure.
type FigureKeyOpts struct {
	Plot    string `json:"plot"` // "dice" or "domino"
	Backend string `json:"backend"`
	Format  string `json:"format"`

	// Params holds the flattened layout options (columns, theme hash,
	// ordering, axis switch and so on).
	Params map[string]string `json:"params,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DatasetKey generates a key for dataset caching.
func (k *DefaultKeyer) DatasetKey(contentHash string) string {
	return keyOf("dataset", contentHash)
}

// FigureKey generates a key for figure caching.
func (k *DefaultKeyer) FigureKey(datasetHash string, opts FigureKeyOpts) string {
	return keyOf("figure", datasetHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)

// Hash returns the hex SHA-256 digest of data. Dataset content hashes use
// it (pipeline results report it as DatasetHash), and the file cache fans
// entries out by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// keyOf namespaces a key as "prefix:digest", where the digest covers the
// JSON encoding of parts. The full 256-bit digest keeps figure keys built
// from large option sets collision-free.
func keyOf(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// NullCache discards everything. The CLI uses it for --no-cache runs, and
// the pipeline runner falls back to it when no store is configured.
type NullCache struct{}

// NewNullCache creates a cache that never hits.
func NewNullCache() Cache {
	return &NullCache{}
}

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
