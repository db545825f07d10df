//nolint:wrapcheck
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/primordium/format"
)

var errDigestArgs = errors.New("expected exactly one argument: path to report.json")

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Summarize a previously generated JSON report",
		ArgsUsage: "<report.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "check",
				Usage: "Show files affected by a specific check (e.g., modernize-use-nullptr)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errDigestArgs, cmd.NArg())
			}

			return runDigest(cmd.Args().First(), cmd.String("check"), cmd.String("format"))
		},
	}
}

// digestReport holds the typed slice of a JSON report the digest needs.
type digestReport struct {
	Metadata struct {
		BuildDir      string `json:"build_dir"`
		FilesAnalyzed int    `json:"files_analyzed"`
		FilesTotal    int    `json:"files_total"`
	} `json:"metadata"`
	Summary struct {
		TotalIssues int            `json:"total_issues"`
		BySeverity  map[string]int `json:"by_severity"`
		ByCheck     map[string]int `json:"by_check"`
		ByFile      map[string]int `json:"by_file"`
	} `json:"summary"`
	Issues []digestIssue `json:"issues"`
}

type digestIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Check    string `json:"check"`
}

func runDigest(reportPath, checkFilter, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(reportPath) //nolint:gosec // CLI tool opens user-specified report files
	if err != nil {
		return fmt.Errorf("opening report: %w", err)
	}

	var report digestReport
	if err = json.Unmarshal(content, &report); err != nil {
		return fmt.Errorf("parsing report: %w", err)
	}

	meta := buildDigest(&report)

	if checkFilter != "" {
		meta["check_detail"] = buildCheckDetail(&report, checkFilter)
	}

	data := &format.Data{
		Object: reportPath,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}

func buildDigest(report *digestReport) map[string]any {
	meta := map[string]any{
		"summary": fmt.Sprintf("%d findings across %d files (%d of %d analyzed)",
			report.Summary.TotalIssues, len(report.Summary.ByFile),
			report.Metadata.FilesAnalyzed, report.Metadata.FilesTotal),
	}

	if counts := severityLine(report.Summary.BySeverity); counts != "" {
		meta["severity"] = counts
	}

	if checks := rankedCounts(report.Summary.ByCheck); len(checks) > 0 {
		meta["checks"] = checks
	}

	if files := rankedCounts(report.Summary.ByFile); len(files) > 0 {
		if len(files) > topFileCount {
			files = files[:topFileCount]
		}

		meta["heaviest"] = files
	}

	if dist := distribution(report.Summary.ByFile); dist != "" {
		meta["distribution"] = dist
	}

	return meta
}

func severityLine(bySeverity map[string]int) string {
	parts := make([]string, 0, len(bySeverity))

	for _, severity := range []string{"error", "warning", "note"} {
		if count, ok := bySeverity[severity]; ok && count > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", severity, count))
		}
	}

	return strings.Join(parts, ", ")
}

func rankedCounts(counts map[string]int) []any {
	type entry struct {
		name  string
		count int
	}

	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name: name, count: count})
	}

	slices.SortFunc(entries, func(a, b entry) int {
		if a.count != b.count {
			return b.count - a.count
		}

		return strings.Compare(a.name, b.name)
	})

	lines := make([]any, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: %d", e.name, e.count))
	}

	return lines
}

// distribution characterizes findings per affected file.
func distribution(byFile map[string]int) string {
	if len(byFile) == 0 {
		return ""
	}

	counts := make([]float64, 0, len(byFile))
	for _, count := range byFile {
		counts = append(counts, float64(count))
	}

	sort.Float64s(counts)

	mean := stat.Mean(counts, nil)
	median := stat.Quantile(0.5, stat.Empirical, counts, nil)
	p90 := stat.Quantile(0.9, stat.Empirical, counts, nil)

	return fmt.Sprintf("per affected file: mean %.1f, median %.0f, p90 %.0f, max %.0f",
		mean, median, p90, counts[len(counts)-1])
}

func buildCheckDetail(report *digestReport, check string) map[string]any {
	affected := map[string][]any{}

	for _, issue := range report.Issues {
		if issue.Check != check {
			continue
		}

		line := fmt.Sprintf("%d:%d: %s: %s", issue.Line, issue.Column, issue.Severity, issue.Message)
		affected[issue.File] = append(affected[issue.File], line)
	}

	if len(affected) == 0 {
		return map[string]any{"check": check, "affected": "no files"}
	}

	detail := make(map[string]any, len(affected)+1)
	detail["check"] = check

	for file, lines := range affected {
		detail[file] = lines
	}

	return detail
}
