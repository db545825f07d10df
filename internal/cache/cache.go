// Package cache stores per-file analysis results between runs.
//
// The key covers the source file content and the analyzer settings, so any
// edit or settings change misses and triggers a fresh analysis. Payloads are
// msgpack with a schema version for safe invalidation.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/farcloser/tidewrack"
)

// Bump when the payload format changes.
const schemaVersion uint16 = 1

// Cache is a disk-backed result store. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type payload struct {
	Schema      uint16
	Diagnostics []tidewrack.Diagnostic
}

// Open initializes the cache at the standard location:
// $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving cache directory: %w", err)
		}

		base = filepath.Join(home, ".cache")
	}

	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &Cache{dir: dir}, nil
}

// Key derives the cache key for one file under the given analyzer settings.
func Key(filePath, buildDir, checks, headerFilter string) (string, error) {
	file, err := os.Open(filePath) //nolint:gosec // path comes from the compilation database
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", filePath, err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err = io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("hashing %s: %w", filePath, err)
	}

	fmt.Fprintf(hash, "\x00%s\x00%s\x00%s", buildDir, checks, headerFilter)

	return hex.EncodeToString(hash.Sum(nil)), nil
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, "results", key+".mp")
}

// Get returns the cached diagnostics for key, if present and current.
// A schema mismatch reads as a miss.
func (c *Cache) Get(key string) ([]tidewrack.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	file, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}
	defer file.Close()

	var entry payload
	if err = msgpack.NewDecoder(file).Decode(&entry); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Schema != schemaVersion {
		return nil, false, nil
	}

	return entry.Diagnostics, true, nil
}

// Put writes the diagnostics for key, using a temp file and atomic rename
// so concurrent readers never observe a partial entry.
func (c *Cache) Put(key string, diags []tidewrack.Diagnostic) error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "tmp-*")
	if err != nil {
		return fmt.Errorf("creating cache entry: %w", err)
	}

	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success

	entry := payload{Schema: schemaVersion, Diagnostics: diags}
	if err = msgpack.NewEncoder(tmp).Encode(&entry); err != nil {
		tmp.Close()

		return fmt.Errorf("encoding cache entry: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("committing cache entry: %w", err)
	}

	return nil
}
