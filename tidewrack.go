// Package tidewrack turns raw clang-tidy output into a deduplicated,
// queryable collection of diagnostics.
package tidewrack

import (
	"fmt"
	"time"
)

/*
Usage:

collector := tidewrack.NewCollector(matcher)
stats, err := collector.Parse(analyzerOutput)
if err != nil {
    return err
}

fmt.Printf("added %d, skipped %d duplicates\n", stats.Added, stats.Duplicates)

for file, diags := range collector.ByFile() {
    fmt.Printf("%s: %d findings\n", file, len(diags))
}

*/

// Severity classifies a diagnostic. Higher values are worse.
type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}

	return "unknown"
}

// MarshalJSON renders the severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts the string form produced by MarshalJSON.
func (s *Severity) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}

	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// ParseSeverity converts a string to a Severity value.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "note":
		return SeverityNote, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("unknown severity %q (valid: error, warning, note)", s)
	}
}

// Diagnostic is one finding reported by the analyzer.
// Created once per unique match and never mutated afterwards.
type Diagnostic struct {
	File      string    `json:"file"`
	Line      int       `json:"line"`
	Column    int       `json:"column"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Check     string    `json:"check"`
	Timestamp time.Time `json:"timestamp"`
}

// Key returns the identity tuple used for deduplication.
// The timestamp is deliberately not part of it.
func (d *Diagnostic) Key() Key {
	return Key{
		File:     d.File,
		Line:     d.Line,
		Column:   d.Column,
		Severity: d.Severity,
		Message:  d.Message,
		Check:    d.Check,
	}
}

// Key is the exact 6-tuple identity of a diagnostic.
type Key struct {
	File     string
	Line     int
	Column   int
	Severity Severity
	Message  string
	Check    string
}
