package tidewrack

import (
	"sync"
	"time"

	"github.com/farcloser/tidewrack/internal/exclude"
)

// AddResult reports what happened to a diagnostic offered to the collection.
type AddResult int

const (
	AddedNew AddResult = iota
	AddedDuplicate
	AddedExcluded
)

// Collector accumulates diagnostics across any number of Parse calls,
// dropping exact duplicates and findings on excluded paths.
// Safe for concurrent use: the external parallel runner interleaves output
// from many translation units into one stream, and cached results may be
// merged from several goroutines.
type Collector struct {
	mu sync.Mutex

	matcher *exclude.Matcher
	seen    map[Key]struct{}
	diags   []*Diagnostic

	duplicates int
	excluded   int

	now func() time.Time
}

// NewCollector returns an empty collection. A nil matcher excludes nothing.
func NewCollector(matcher *exclude.Matcher) *Collector {
	return &Collector{
		matcher: matcher,
		seen:    map[Key]struct{}{},
		now:     time.Now,
	}
}

// Add offers one diagnostic to the collection. The timestamp is stamped
// here, on first sight; a duplicate keeps the original's timestamp.
func (c *Collector) Add(diag *Diagnostic) AddResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.matcher.Excluded(diag.File) {
		c.excluded++

		return AddedExcluded
	}

	key := diag.Key()
	if _, ok := c.seen[key]; ok {
		c.duplicates++

		return AddedDuplicate
	}

	c.seen[key] = struct{}{}

	if diag.Timestamp.IsZero() {
		diag.Timestamp = c.now()
	}

	c.diags = append(c.diags, diag)

	return AddedNew
}

// Len returns the number of unique diagnostics collected.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.diags)
}

// Duplicates returns how many diagnostics were dropped as duplicates.
func (c *Collector) Duplicates() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.duplicates
}

// Excluded returns how many diagnostics were dropped by the matcher.
func (c *Collector) Excluded() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.excluded
}

// Diagnostics returns the collected diagnostics in first-seen order.
func (c *Collector) Diagnostics() []*Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Diagnostic, len(c.diags))
	copy(out, c.diags)

	return out
}

// ByFile regroups the collection by file path, preserving first-seen order
// within each file.
func (c *Collector) ByFile() map[string][]*Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := map[string][]*Diagnostic{}
	for _, diag := range c.diags {
		out[diag.File] = append(out[diag.File], diag)
	}

	return out
}

// ByCheck regroups the collection by check identifier.
func (c *Collector) ByCheck() map[string][]*Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := map[string][]*Diagnostic{}
	for _, diag := range c.diags {
		out[diag.Check] = append(out[diag.Check], diag)
	}

	return out
}

// BySeverity regroups the collection by severity.
func (c *Collector) BySeverity() map[Severity][]*Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := map[Severity][]*Diagnostic{}
	for _, diag := range c.diags {
		out[diag.Severity] = append(out[diag.Severity], diag)
	}

	return out
}

// FileCounts returns the number of diagnostics per file.
func (c *Collector) FileCounts() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := map[string]int{}
	for _, diag := range c.diags {
		out[diag.File]++
	}

	return out
}
