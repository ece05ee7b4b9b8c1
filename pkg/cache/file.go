package cache

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// AppName names the per-user cache directory.
const AppName = "treelayout"

// DefaultDir returns the per-user cache directory, e.g.
// ~/.cache/treelayout on Linux or ~/Library/Caches/treelayout on macOS.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// FileCache keeps one file per entry, sharded into 256 subdirectories by the
// first byte of the key hash.
//
// An entry file is a one-line JSON header followed by the raw artifact
// bytes, so large PNGs are stored without re-encoding. Unreadable or
// truncated entries are treated as misses and removed.
type FileCache struct {
	dir string
}

// entryHeader is the first line of an entry file.
type entryHeader struct {
	Key       string     `json:"key"`
	Size      int        `json:"size"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Usage describes what a FileCache currently holds.
type Usage struct {
	Entries int
	Bytes   int64
}

// NewFileCache opens the cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache root directory.
func (c *FileCache) Dir() string { return c.dir }

// Get returns the entry for key. Expired, corrupt and colliding entries are
// misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	hdr, data, ok := decodeEntry(raw)
	if !ok || hdr.Key != key || (hdr.ExpiresAt != nil && time.Now().After(*hdr.ExpiresAt)) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

func decodeEntry(raw []byte) (entryHeader, []byte, bool) {
	var hdr entryHeader
	line, data, found := bytes.Cut(raw, []byte{'\n'})
	if !found || json.Unmarshal(line, &hdr) != nil || hdr.Size != len(data) {
		return entryHeader{}, nil, false
	}
	return hdr, data, true
}

// Set stores data under key. The entry is written to a temporary file and
// renamed into place, so readers never observe a partial entry.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	hdr := entryHeader{Key: key, Size: len(data)}
	if ttl > 0 {
		exp := time.Now().Add(ttl)
		hdr.ExpiresAt = &exp
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := json.NewEncoder(w).Encode(hdr); err != nil {
		tmp.Close()
		return err
	}
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes key. Deleting a missing key is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Usage walks the cache and totals its entries.
func (c *FileCache) Usage() (Usage, error) {
	var u Usage
	err := c.walkEntries(func(_ string, info fs.FileInfo) error {
		u.Entries++
		u.Bytes += info.Size()
		return nil
	})
	return u, err
}

// Clear removes every entry along with the emptied shard directories and
// returns how many entries were deleted. Only shard directories (two
// lowercase hex digits) are touched; anything else under the cache
// directory is left alone.
func (c *FileCache) Clear() (int, error) {
	n := 0
	err := c.walkEntries(func(path string, _ fs.FileInfo) error {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, err
	}

	shards, err := c.shards()
	if err != nil {
		return n, err
	}
	for _, s := range shards {
		// A shard still holding foreign files is kept.
		if err := os.Remove(s); err != nil && !os.IsNotExist(err) && !dirNotEmpty(s) {
			return n, err
		}
	}
	return n, nil
}

func (c *FileCache) walkEntries(fn func(path string, info fs.FileInfo) error) error {
	shards, err := c.shards()
	if err != nil {
		return err
	}
	for _, shard := range shards {
		paths, err := filepath.Glob(filepath.Join(shard, "*.entry"))
		if err != nil {
			return err
		}
		for _, p := range paths {
			info, err := os.Lstat(p)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				continue
			}
			if err := fn(p, info); err != nil {
				return err
			}
		}
	}
	return nil
}

// shards lists the shard directories under the cache directory.
func (c *FileCache) shards() ([]string, error) {
	des, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, de := range des {
		if de.IsDir() && isShardName(de.Name()) {
			out = append(out, filepath.Join(c.dir, de.Name()))
		}
	}
	return out, nil
}

func isShardName(name string) bool {
	if len(name) != 2 {
		return false
	}
	for _, r := range name {
		if !('0' <= r && r <= '9' || 'a' <= r && r <= 'f') {
			return false
		}
	}
	return true
}

func dirNotEmpty(dir string) bool {
	des, err := os.ReadDir(dir)
	return err == nil && len(des) > 0
}

// Close is a no-op.
func (c *FileCache) Close() error { return nil }

// path maps key to <dir>/<first two hex digits>/<rest>.entry.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".entry")
}

var _ Cache = (*FileCache)(nil)
