// Package render writes diagnostic reports in HTML, Markdown, CSV and JSON,
// plus a shell script that re-applies fixes.
package render

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/farcloser/tidewrack"
)

// Above this many findings the HTML and Markdown reports paginate into
// per-file sub-reports instead of inlining every finding.
const inlineLimit = 1000

// Report bundles the collected diagnostics with run metadata for rendering.
type Report struct {
	GeneratedAt time.Time
	ToolVersion string

	BuildDir     string
	ProjectDir   string
	ConfigFile   string
	Checks       string
	HeaderFilter string

	ExcludePatterns []string

	FilesTotal    int
	FilesAnalyzed int
	FilesExcluded int
	FilesMissing  int

	DuplicateFindings int
	ExcludedFindings  int

	Collection *tidewrack.Collector
}

// DisplayPath returns the path as shown in reports: relative to the project
// directory when one is configured, otherwise as collected.
func (r *Report) DisplayPath(file string) string {
	if r.ProjectDir == "" {
		return file
	}

	rel, err := filepath.Rel(r.ProjectDir, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return file
	}

	return filepath.ToSlash(rel)
}

// fileSummary aggregates findings for one file.
type fileSummary struct {
	File     string
	Display  string
	Count    int
	Errors   int
	Warnings int
	Notes    int

	// Page is the sub-report file name, set only when paginating.
	Page string
}

// fileSummaries returns per-file aggregates sorted by finding count,
// heaviest first, ties broken by path.
func (r *Report) fileSummaries() []fileSummary {
	byFile := r.Collection.ByFile()

	summaries := make([]fileSummary, 0, len(byFile))

	for file, diags := range byFile {
		summary := fileSummary{File: file, Display: r.DisplayPath(file), Count: len(diags)}

		for _, diag := range diags {
			switch diag.Severity {
			case tidewrack.SeverityError:
				summary.Errors++
			case tidewrack.SeverityWarning:
				summary.Warnings++
			case tidewrack.SeverityNote:
				summary.Notes++
			}
		}

		summaries = append(summaries, summary)
	}

	slices.SortFunc(summaries, func(a, b fileSummary) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}

		return strings.Compare(a.Display, b.Display)
	})

	return summaries
}

// checkSummary aggregates findings for one check identifier.
type checkSummary struct {
	Check string
	Count int
}

// checkSummaries returns per-check aggregates sorted by finding count,
// heaviest first, ties broken by check name.
func (r *Report) checkSummaries() []checkSummary {
	byCheck := r.Collection.ByCheck()

	summaries := make([]checkSummary, 0, len(byCheck))
	for check, diags := range byCheck {
		summaries = append(summaries, checkSummary{Check: check, Count: len(diags)})
	}

	slices.SortFunc(summaries, func(a, b checkSummary) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}

		return strings.Compare(a.Check, b.Check)
	})

	return summaries
}

// severityCounts returns finding totals keyed by severity string.
func (r *Report) severityCounts() map[string]int {
	out := map[string]int{}
	for severity, diags := range r.Collection.BySeverity() {
		out[severity.String()] = len(diags)
	}

	return out
}

// sortedDiagnostics returns one file's findings ordered by line and column.
func sortedDiagnostics(diags []*tidewrack.Diagnostic) []*tidewrack.Diagnostic {
	out := make([]*tidewrack.Diagnostic, len(diags))
	copy(out, diags)

	slices.SortFunc(out, func(a, b *tidewrack.Diagnostic) int {
		if a.Line != b.Line {
			return a.Line - b.Line
		}

		return a.Column - b.Column
	})

	return out
}

// pageName returns the sub-report file name for the nth heaviest file.
func pageName(index int, ext string) string {
	return fmt.Sprintf("file-%03d.%s", index+1, ext)
}
