package exclude

import "strings"

// Matcher evaluates a set of compiled patterns against paths.
// Patterns are independent OR-ed predicates; the first match wins and their
// order is otherwise immaterial.
type Matcher struct {
	patterns []Pattern
}

// NewMatcher compiles the given patterns. Empty entries are rejected.
func NewMatcher(patterns []string) (*Matcher, error) {
	compiled := make([]Pattern, 0, len(patterns))

	for _, raw := range patterns {
		pat, err := Compile(raw)
		if err != nil {
			return nil, err
		}

		compiled = append(compiled, pat)
	}

	return &Matcher{patterns: compiled}, nil
}

// ParseList compiles a comma-separated pattern list, skipping blank entries.
func ParseList(list string) (*Matcher, error) {
	var patterns []string

	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		patterns = append(patterns, entry)
	}

	return NewMatcher(patterns)
}

// Excluded reports whether any pattern matches the path.
func (m *Matcher) Excluded(path string) bool {
	_, matched := m.Explain(path)

	return matched
}

// Explain returns the first pattern that matches the path, for operator
// tracing of exclusion decisions.
func (m *Matcher) Explain(path string) (Pattern, bool) {
	if m == nil {
		return Pattern{}, false
	}

	normalized := NormalizePath(path)

	for _, pat := range m.patterns {
		if pat.match(normalized) {
			return pat, true
		}
	}

	return Pattern{}, false
}

// Patterns returns the compiled pattern list.
func (m *Matcher) Patterns() []Pattern {
	if m == nil {
		return nil
	}

	return m.patterns
}

// Empty reports whether the matcher has no patterns.
func (m *Matcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}
