//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/tidewrack"
	"github.com/farcloser/tidewrack/internal/compiledb"
	"github.com/farcloser/tidewrack/internal/config"
	"github.com/farcloser/tidewrack/internal/exclude"
	"github.com/farcloser/tidewrack/internal/integration/clangtidy"
	"github.com/farcloser/tidewrack/internal/render"
)

var (
	errReportArgs       = errors.New("expected exactly one argument: build directory containing " + compiledb.FileName)
	errUnknownPrintMode = errors.New("unknown print mode: expected quiet, progress, verbose, or full")
	errUnknownFormat    = errors.New("unknown report format: expected all, html, markdown, csv, or json")
	errNoSources        = errors.New("no source files left to analyze")
)

type printMode int

const (
	printQuiet printMode = iota
	printProgress
	printVerbose
	printFull
)

func parsePrintMode(raw string) (printMode, error) {
	switch raw {
	case "quiet":
		return printQuiet, nil
	case "progress":
		return printProgress, nil
	case "verbose":
		return printVerbose, nil
	case "full":
		return printFull, nil
	default:
		return 0, fmt.Errorf("%w: got %q", errUnknownPrintMode, raw)
	}
}

//nolint:gochecknoglobals
var knownFormats = []string{"html", "markdown", "csv", "json"}

func parseFormats(raw string) ([]string, error) {
	var result []string

	for name := range strings.SplitSeq(raw, ",") {
		name = strings.TrimSpace(name)

		switch {
		case name == "":
		case name == "all":
			result = append(result, knownFormats...)
		case slices.Contains(knownFormats, name):
			result = append(result, name)
		default:
			return nil, fmt.Errorf("%w: got %q", errUnknownFormat, name)
		}
	}

	if len(result) == 0 {
		result = slices.Clone(knownFormats)
	}

	slices.Sort(result)

	return slices.Compact(result), nil
}

// reportSettings is the merged view of built-ins, tidewrack.toml, and flags.
type reportSettings struct {
	buildDir   string
	projectDir string
	outputDir  string

	checks       string
	noConfig     bool
	headerFilter string
	configFile   string

	matcher  *exclude.Matcher
	patterns []string

	formats []string
	mode    printMode
	limit   int
	saveRaw bool
	noCache bool
	jobs    int
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Run clang-tidy across a compilation database and generate reports",
		ArgsUsage: "<build-dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "checks",
				Aliases: []string{"C"},
				Usage:   "clang-tidy -checks value; empty uses the .clang-tidy file when present",
			},
			&cli.BoolFlag{
				Name:  "no-config",
				Usage: "Ignore .clang-tidy files and run a minimal check set",
			},
			&cli.StringFlag{
				Name:  "header-filter",
				Usage: "clang-tidy -header-filter regular expression",
			},
			&cli.StringFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "Comma-separated path patterns to skip (supports *, ?, and **)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Report output directory",
			},
			&cli.StringFlag{
				Name:  "project-dir",
				Usage: "Project root for relative paths in reports (defaults to the working directory)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Comma-separated report formats: all, html, markdown, csv, json",
			},
			&cli.StringFlag{
				Name:    "print",
				Aliases: []string{"p"},
				Usage:   "Console output mode: quiet, progress, verbose, full",
				Value:   "progress",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Analyze at most this many files (0 = no limit)",
			},
			&cli.BoolFlag{
				Name:  "save-raw-output",
				Usage: "Keep the raw clang-tidy output next to the reports",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Skip the per-file result cache",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "Analyze in parallel through run-clang-tidy (0 or 1 = sequential)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errReportArgs, cmd.NArg())
			}

			settings, err := mergeSettings(cmd)
			if err != nil {
				return err
			}

			return runReport(ctx, settings)
		},
	}
}

func mergeSettings(cmd *cli.Command) (*reportSettings, error) {
	buildDir, err := filepath.Abs(cmd.Args().First())
	if err != nil {
		return nil, err
	}

	projectDir := cmd.String("project-dir")
	if projectDir == "" {
		projectDir, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}

	projectDir, err = filepath.Abs(projectDir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(projectDir, config.FileName))
	if err != nil {
		return nil, err
	}

	// The flag wins over the configuration file's report.project_dir.
	if cmd.String("project-dir") == "" {
		projectDir = resolveProjectDir(cfg.Report.ProjectDir, projectDir)
	}

	mode, err := parsePrintMode(cmd.String("print"))
	if err != nil {
		return nil, err
	}

	formatList := strings.Join(cfg.Report.Formats, ",")
	if cmd.String("format") != "" {
		formatList = cmd.String("format")
	}

	formats, err := parseFormats(formatList)
	if err != nil {
		return nil, err
	}

	patterns := slices.Clone(cfg.Analysis.Exclude)
	for pattern := range strings.SplitSeq(cmd.String("exclude"), ",") {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			patterns = append(patterns, pattern)
		}
	}

	matcher, err := exclude.NewMatcher(patterns)
	if err != nil {
		return nil, err
	}

	checks := cfg.Analysis.Checks
	if cmd.String("checks") != "" {
		checks = cmd.String("checks")
	}

	headerFilter := cfg.Analysis.HeaderFilter
	if cmd.String("header-filter") != "" {
		headerFilter = cmd.String("header-filter")
	}

	outputDir := cfg.Report.Output
	if cmd.String("output") != "" {
		outputDir = cmd.String("output")
	}

	jobs := cfg.Analysis.Jobs
	if cmd.Int("jobs") > 0 {
		jobs = cmd.Int("jobs")
	}

	return &reportSettings{
		buildDir:     buildDir,
		projectDir:   projectDir,
		outputDir:    outputDir,
		checks:       checks,
		noConfig:     cmd.Bool("no-config"),
		headerFilter: headerFilter,
		matcher:      matcher,
		patterns:     patterns,
		formats:      formats,
		mode:         mode,
		limit:        cmd.Int("limit"),
		saveRaw:      cmd.Bool("save-raw-output"),
		noCache:      cmd.Bool("no-cache"),
		jobs:         jobs,
	}, nil
}

// resolveProjectDir settles the project root from the configuration file:
// a relative report.project_dir resolves against the directory the file was
// loaded from, an empty one keeps the base.
func resolveProjectDir(cfgValue, base string) string {
	switch {
	case cfgValue == "":
		return base
	case filepath.IsAbs(cfgValue):
		return filepath.Clean(cfgValue)
	default:
		return filepath.Join(base, cfgValue)
	}
}

// resolveChecks settles the effective -checks value: an explicit request
// wins, --no-config forces the minimal set, a discovered .clang-tidy file
// defers to clang-tidy itself, and the default set covers the rest.
func (s *reportSettings) resolveChecks() {
	if s.noConfig {
		if s.checks == "" {
			s.checks = clangtidy.MinimalChecks
		}

		return
	}

	s.configFile = clangtidy.FindConfig(s.buildDir)

	if s.checks == "" && s.configFile == "" {
		s.checks = clangtidy.DefaultChecks
	}
}

func runReport(ctx context.Context, settings *reportSettings) error {
	stage := stagePrinter{quiet: settings.mode == printQuiet}

	stage.start("checking clang-tidy")

	toolVersion, err := clangtidy.Version(ctx)
	if err != nil {
		stage.fail("clang-tidy not usable")

		return err
	}

	stage.ok(toolVersion)

	entries, err := compiledb.Load(settings.buildDir)
	if err != nil {
		return err
	}

	part := compiledb.Split(entries, settings.matcher)

	stage.ok(fmt.Sprintf("compilation database: %d entries, %d files to analyze, %d excluded",
		len(entries), len(part.Included), part.ExcludedCount()))

	if settings.mode >= printVerbose {
		printExclusions(part)
	}

	settings.resolveChecks()

	if settings.configFile != "" {
		stage.ok("using configuration " + settings.configFile)
	}

	files := part.Included
	if settings.limit > 0 && settings.limit < len(files) {
		files = files[:settings.limit]
	}

	if len(files) == 0 {
		return errNoSources
	}

	collector := tidewrack.NewCollector(settings.matcher)

	startedAt := time.Now()
	stage.start(fmt.Sprintf("analyzing %d files", len(files)))

	outcome, err := analyze(ctx, settings, collector, files)
	if err != nil {
		stage.fail("analysis aborted")

		return err
	}

	stage.ok(fmt.Sprintf("analysis finished in %s: %d findings (%d duplicates, %d cached files, %d missing)",
		time.Since(startedAt).Round(time.Second), collector.Len(),
		collector.Duplicates(), outcome.cached, len(outcome.missing)))

	report := &render.Report{
		GeneratedAt:  time.Now(),
		ToolVersion:  toolVersion,
		BuildDir:     settings.buildDir,
		ProjectDir:   settings.projectDir,
		ConfigFile:   settings.configFile,
		Checks:       settings.checks,
		HeaderFilter: settings.headerFilter,

		ExcludePatterns: settings.patterns,

		FilesTotal:    len(entries),
		FilesAnalyzed: len(files) - len(outcome.missing),
		FilesExcluded: part.ExcludedCount(),
		FilesMissing:  len(outcome.missing),

		DuplicateFindings: collector.Duplicates(),
		ExcludedFindings:  collector.Excluded(),

		Collection: collector,
	}

	if err = writeReports(settings, report, outcome.raw); err != nil {
		return err
	}

	stage.ok("reports written to " + settings.outputDir)

	if settings.mode != printQuiet {
		return printSummary(report, outcome)
	}

	return nil
}

func printExclusions(part compiledb.Partition) {
	for pattern, files := range part.ExcludedBy {
		fmt.Fprintf(os.Stderr, "  pattern %q excluded %d files\n", pattern, len(files))

		for _, file := range files {
			fmt.Fprintf(os.Stderr, "    %s\n", file)
		}
	}
}

func writeReports(settings *reportSettings, report *render.Report, raw []byte) error {
	if err := os.MkdirAll(settings.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, name := range settings.formats {
		var err error

		switch name {
		case "html":
			err = report.WriteHTML(settings.outputDir)
		case "markdown":
			err = report.WriteMarkdown(settings.outputDir)
		case "csv":
			err = writeTo(filepath.Join(settings.outputDir, "report.csv"), report.WriteCSV)
		case "json":
			err = writeTo(filepath.Join(settings.outputDir, "report.json"), report.WriteJSON)
		}

		if err != nil {
			return err
		}
	}

	script := filepath.Join(settings.outputDir, render.FixScriptName)
	if err := writeTo(script, report.WriteFixScript); err != nil {
		return err
	}

	if err := os.Chmod(script, 0o755); err != nil { //nolint:gosec // executable by design
		return fmt.Errorf("marking fix script executable: %w", err)
	}

	if settings.saveRaw && len(raw) > 0 {
		rawPath := filepath.Join(settings.outputDir, "clang-tidy-output.txt")
		if err := os.WriteFile(rawPath, raw, 0o644); err != nil { //nolint:gosec // report output
			return fmt.Errorf("saving raw analyzer output: %w", err)
		}
	}

	return nil
}

func writeTo(path string, write func(w io.Writer) error) error {
	out, err := os.Create(path) //nolint:gosec // report output
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer out.Close()

	if err = write(out); err != nil {
		return err
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	return nil
}
