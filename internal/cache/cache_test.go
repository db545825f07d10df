package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/farcloser/tidewrack"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()

	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := Open("tidewrack-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	return c
}

func TestCacheRoundTrip(t *testing.T) {
	c := openTestCache(t)

	diags := []tidewrack.Diagnostic{
		{
			File:      "/p/a.cpp",
			Line:      3,
			Column:    7,
			Severity:  tidewrack.SeverityWarning,
			Message:   "unused variable 'x'",
			Check:     "clang-diagnostic-unused-variable",
			Timestamp: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		},
	}

	if err := c.Put("somekey", diags); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, hit, err := c.Get("somekey")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if !hit {
		t.Fatal("expected a cache hit")
	}

	if len(got) != 1 || got[0].Key() != diags[0].Key() {
		t.Fatalf("got %+v, want %+v", got, diags)
	}

	if !got[0].Timestamp.Equal(diags[0].Timestamp) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, diags[0].Timestamp)
	}
}

func TestCacheMiss(t *testing.T) {
	c := openTestCache(t)

	if _, hit, err := c.Get("absent"); err != nil || hit {
		t.Fatalf("hit = %v, err = %v; want miss", hit, err)
	}
}

func TestNilCache(t *testing.T) {
	t.Parallel()

	var c *Cache

	if err := c.Put("k", nil); err != nil {
		t.Fatalf("nil Put: %v", err)
	}

	if _, hit, err := c.Get("k"); err != nil || hit {
		t.Fatalf("nil Get: hit = %v, err = %v", hit, err)
	}
}

func TestKeyChangesWithSettings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.cpp")
	if err := os.WriteFile(path, []byte("int main() {}\n"), 0o600); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	base, err := Key(path, "/b", "modernize-*", "")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}

	same, _ := Key(path, "/b", "modernize-*", "")
	if base != same {
		t.Error("identical inputs must produce identical keys")
	}

	other, _ := Key(path, "/b", "performance-*", "")
	if base == other {
		t.Error("different checks must produce different keys")
	}

	if err = os.WriteFile(path, []byte("int main() { return 1; }\n"), 0o600); err != nil {
		t.Fatalf("rewriting source: %v", err)
	}

	edited, _ := Key(path, "/b", "modernize-*", "")
	if base == edited {
		t.Error("edited content must produce a different key")
	}
}
