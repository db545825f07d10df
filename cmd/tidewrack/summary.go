//nolint:wrapcheck
package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/tidewrack/internal/render"
)

const topFileCount = 5

func printSummary(report *render.Report, outcome *analysisOutcome) error {
	formatter, err := format.GetFormatter("console")
	if err != nil {
		return err
	}

	severities := report.Collection.BySeverity()

	meta := map[string]any{
		"summary": fmt.Sprintf("%d findings across %d files", report.Collection.Len(), len(report.Collection.FileCounts())),
		"files": fmt.Sprintf("%d analyzed of %d (%d excluded, %d missing)",
			report.FilesAnalyzed, report.FilesTotal, report.FilesExcluded, report.FilesMissing),
	}

	counts := make([]string, 0, len(severities))
	for severity, diags := range severities {
		counts = append(counts, fmt.Sprintf("%s: %d", severity, len(diags)))
	}

	slices.Sort(counts)

	if len(counts) > 0 {
		meta["severity"] = strings.Join(counts, ", ")
	}

	if report.DuplicateFindings > 0 || report.ExcludedFindings > 0 {
		meta["dropped"] = fmt.Sprintf("%d duplicates, %d on excluded paths",
			report.DuplicateFindings, report.ExcludedFindings)
	}

	if outcome.cached > 0 {
		meta["cached"] = fmt.Sprintf("%d files served from cache", outcome.cached)
	}

	if len(outcome.failed) > 0 {
		meta["failed"] = fmt.Sprintf("%d files failed analysis", len(outcome.failed))
	}

	if top := topFiles(report); len(top) > 0 {
		meta["heaviest"] = top
	}

	data := &format.Data{
		Object: report.BuildDir,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}

type fileCount struct {
	file  string
	count int
}

func topFiles(report *render.Report) []any {
	counts := make([]fileCount, 0, len(report.Collection.FileCounts()))
	for file, count := range report.Collection.FileCounts() {
		counts = append(counts, fileCount{file: file, count: count})
	}

	slices.SortFunc(counts, func(a, b fileCount) int {
		if a.count != b.count {
			return b.count - a.count
		}

		return strings.Compare(a.file, b.file)
	})

	if len(counts) > topFileCount {
		counts = counts[:topFileCount]
	}

	lines := make([]any, 0, len(counts))
	for _, entry := range counts {
		lines = append(lines, fmt.Sprintf("%s: %d findings", report.DisplayPath(entry.file), entry.count))
	}

	return lines
}
