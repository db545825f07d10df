// Package exclude implements glob-like path exclusion patterns.
//
// Patterns support `*` and `?` wildcards within a single path segment, plus
// a `**` form that spans directories: `**` alone matches everything,
// `**/tail` matches tail anywhere in the tree, `dir/**` matches a directory
// subtree, and `head/**/tail` matches tail anywhere below head.
package exclude

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyPattern = errors.New("empty exclusion pattern")

// Kind identifies the compiled matching strategy for a pattern.
type Kind int

const (
	KindAll    Kind = iota // pattern is exactly "**"
	KindPrefix             // "**/tail"
	KindSuffix             // "dir/**"
	KindInfix              // "head/**/tail"
	KindPlain              // no "**"
)

func (k Kind) String() string {
	switch k {
	case KindAll:
		return "all"
	case KindPrefix:
		return "prefix"
	case KindSuffix:
		return "suffix"
	case KindInfix:
		return "infix"
	case KindPlain:
		return "plain"
	}

	return "unknown"
}

// Pattern is one compiled exclusion pattern. Classification happens once at
// compile time; Match dispatches on the stored kind without re-inspecting
// the source text.
type Pattern struct {
	// Source is the pattern as given, before normalization.
	Source string

	kind Kind
	head string // KindSuffix: the directory; KindInfix: text before "**"
	tail string // KindPrefix: text after "**/"; KindInfix: text after "**"
	glob string // KindPlain: the whole normalized pattern
}

// Compile normalizes and classifies a single pattern.
func Compile(raw string) (Pattern, error) {
	normalized := normalizePattern(raw)
	if normalized == "" {
		return Pattern{}, fmt.Errorf("%w: %q", ErrEmptyPattern, raw)
	}

	pat := Pattern{Source: raw}

	switch {
	case normalized == "**":
		pat.kind = KindAll
	case strings.HasPrefix(normalized, "**/"):
		pat.kind = KindPrefix
		pat.tail = normalized[3:]
	case strings.HasSuffix(normalized, "/**"):
		pat.kind = KindSuffix
		pat.head = normalized[:len(normalized)-3]
	case strings.Contains(normalized, "**"):
		// Only the first "**" is structural; any later occurrence is left in
		// the tail and degrades to a directory-spanning wildcard there.
		idx := strings.Index(normalized, "**")
		pat.kind = KindInfix
		pat.head = strings.TrimRight(normalized[:idx], "/")
		pat.tail = strings.TrimLeft(normalized[idx+2:], "/")
	default:
		pat.kind = KindPlain
		pat.glob = normalized
	}

	return pat, nil
}

// Kind returns the compiled classification.
func (p Pattern) Kind() Kind {
	return p.kind
}

// Match reports whether the pattern matches the given path.
// The path is normalized before evaluation.
func (p Pattern) Match(path string) bool {
	return p.match(NormalizePath(path))
}

// match evaluates against an already-normalized path.
func (p Pattern) match(path string) bool {
	if path == "" {
		return false
	}

	switch p.kind {
	case KindAll:
		return true
	case KindPrefix:
		return p.matchPrefix(path)
	case KindSuffix:
		return p.matchSuffix(path)
	case KindInfix:
		return p.matchInfix(path)
	case KindPlain:
		return p.matchPlain(path)
	}

	return false
}

// matchPrefix handles "**/tail": tail may match any single path component,
// or any path suffix starting at a component boundary.
func (p Pattern) matchPrefix(path string) bool {
	for start := 0; ; {
		rest := path[start:]

		comp := rest
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			comp = rest[:idx]
		}

		if matchGlob(p.tail, comp) || matchGlob(p.tail, rest) {
			return true
		}

		idx := strings.IndexByte(rest, '/')
		if idx < 0 {
			return false
		}

		start += idx + 1
	}
}

// matchSuffix handles "dir/**": the directory and everything under it.
func (p Pattern) matchSuffix(path string) bool {
	// A single component may glob-match the directory name.
	if !strings.Contains(p.head, "/") {
		for start := 0; ; {
			rest := path[start:]

			comp := rest
			if idx := strings.IndexByte(rest, '/'); idx >= 0 {
				comp = rest[:idx]
			}

			if matchGlob(p.head, comp) {
				return true
			}

			idx := strings.IndexByte(rest, '/')
			if idx < 0 {
				break
			}

			start += idx + 1
		}
	}

	// Literal directory anywhere in the path, with implicit boundary slashes.
	if strings.Contains("/"+path+"/", "/"+p.head+"/") {
		return true
	}

	return path == p.head || strings.HasPrefix(path, p.head+"/")
}

// matchInfix handles "head/**/tail": the path must contain head ending at
// some position, with the remainder matching tail at a component boundary.
func (p Pattern) matchInfix(path string) bool {
	if p.head == "" {
		return matchGlob("**"+p.tail, path)
	}

	for i := len(p.head); i <= len(path); i++ {
		if !strings.HasSuffix(path[:i], p.head) {
			continue
		}

		if p.tail == "" {
			return true
		}

		rest := strings.TrimLeft(path[i:], "/")
		if anySuffixMatch(p.tail, rest) {
			return true
		}
	}

	return false
}

// matchPlain handles patterns without "**": a single-level glob over the
// whole path, the basename when the pattern has no slash, and directory
// membership for a trailing "/*".
func (p Pattern) matchPlain(path string) bool {
	if matchGlob(p.glob, path) {
		return true
	}

	if !strings.Contains(p.glob, "/") {
		base := path
		if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
			base = path[idx+1:]
		}

		if matchGlob(p.glob, base) {
			return true
		}
	}

	if dir, ok := strings.CutSuffix(p.glob, "/*"); ok {
		for i := 0; i <= len(path); i++ {
			if i == len(path) || path[i] == '/' {
				if matchGlob(dir, path[:i]) {
					return true
				}
			}
		}
	}

	return false
}

// anySuffixMatch reports whether glob matches any suffix of path starting
// at a component boundary (including the whole path).
func anySuffixMatch(glob, path string) bool {
	for start := 0; ; {
		if matchGlob(glob, path[start:]) {
			return true
		}

		idx := strings.IndexByte(path[start:], '/')
		if idx < 0 {
			return false
		}

		start += idx + 1
	}
}
