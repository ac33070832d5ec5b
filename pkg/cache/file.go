package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// entryExt marks on-disk cache entries, so stray files in the cache
// directory are never mistaken for them.
const entryExt = ".fig"

// FileCache keeps rendered figures and dataset snapshots on disk, one
// JSON envelope per entry under a two-level fan-out of the key hash. It
// backs the CLI, where the cache only has to outlive repeated runs on the
// same machine.
type FileCache struct {
	dir string
}

// NewFileCache opens a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// envelope is the on-disk entry format. Payload holds the figure bytes or
// dataset snapshot; a zero Expires means the entry never ages out.
type envelope struct {
	Payload []byte    `json:"payload"`
	Stored  time.Time `json:"stored"`
	Expires time.Time `json:"expires,omitempty"`
}

// Get retrieves an entry. Corrupt and expired entries are removed and
// reported as misses, so a rerun just recomputes them.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !env.Expires.IsZero() && time.Now().After(env.Expires) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return env.Payload, true, nil
}

// Set stores an entry. The envelope is written to a temporary file and
// renamed into place, so a concurrent Get never sees a torn entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	env := envelope{Payload: data, Stored: time.Now()}
	if ttl > 0 {
		env.Expires = env.Stored.Add(ttl)
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes an entry. Missing entries are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; entries live on disk.
func (c *FileCache) Close() error {
	return nil
}

// entryPath maps a key onto dir/hh/rest.fig, where hh is the first byte of
// the key hash. The fan-out keeps any one directory from accumulating
// every figure ever rendered.
func (c *FileCache) entryPath(key string) string {
	digest := Hash([]byte(key))
	return filepath.Join(c.dir, digest[:2], digest[2:]+entryExt)
}

var _ Cache = (*FileCache)(nil)
