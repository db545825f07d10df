package tidewrack

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// diagnosticLine matches the clang-tidy finding format:
//
//	<file>:<line>:<column>: <severity>: <message> [<check>]
//
// Continuation lines, code excerpts, caret markers and compiler chatter do
// not match and are skipped.
//
//nolint:gochecknoglobals // compiled once
var diagnosticLine = regexp.MustCompile(
	`^(.+):(\d+):(\d+): (error|warning|note): (.+) \[([^\[\]]+)\]$`,
)

// maxLineSize bounds a single analyzer output line.
const maxLineSize = 1024 * 1024 // 1MB

// ParseStats summarizes one Parse call.
type ParseStats struct {
	// Lines is the number of input lines seen.
	Lines int
	// Matched is the number of lines that parsed as diagnostics.
	Matched int
	// Added is the number of new diagnostics kept in the collection.
	Added int
	// Duplicates is the number of diagnostics dropped as already seen.
	Duplicates int
	// Excluded is the number of diagnostics dropped by the exclusion matcher.
	Excluded int
}

// Merge returns the accumulated totals of two parse runs.
func (s ParseStats) Merge(other ParseStats) ParseStats {
	s.Lines += other.Lines
	s.Matched += other.Matched
	s.Added += other.Added
	s.Duplicates += other.Duplicates
	s.Excluded += other.Excluded

	return s
}

// ParseLine parses a single analyzer output line.
// The second return value is false when the line is not a diagnostic.
func ParseLine(line string) (*Diagnostic, bool) {
	groups := diagnosticLine.FindStringSubmatch(line)
	if groups == nil {
		return nil, false
	}

	lineNo, err := strconv.Atoi(groups[2])
	if err != nil {
		return nil, false
	}

	column, err := strconv.Atoi(groups[3])
	if err != nil {
		return nil, false
	}

	severity, err := ParseSeverity(groups[4])
	if err != nil {
		return nil, false
	}

	return &Diagnostic{
		File:     groups[1],
		Line:     lineNo,
		Column:   column,
		Severity: severity,
		Message:  groups[5],
		Check:    groups[6],
	}, true
}

// Parse reads analyzer output line by line and merges any diagnostics into
// the collection. Duplicates and excluded paths are counted, not errors.
func (c *Collector) Parse(r io.Reader) (ParseStats, error) {
	var stats ParseStats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, maxLineSize), maxLineSize)

	for scanner.Scan() {
		stats.Lines++

		diag, matched := ParseLine(scanner.Text())
		if !matched {
			continue
		}

		stats.Matched++

		switch c.Add(diag) {
		case AddedNew:
			stats.Added++
		case AddedDuplicate:
			stats.Duplicates++
		case AddedExcluded:
			stats.Excluded++
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("reading analyzer output: %w", err)
	}

	return stats, nil
}

// ParseString is Parse over an in-memory string.
func (c *Collector) ParseString(output string) ParseStats {
	// strings.Reader never errors; lines above the size cap cannot occur
	// for inputs below maxLineSize.
	stats, _ := c.Parse(strings.NewReader(output))

	return stats
}
