//nolint:wrapcheck
package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/farcloser/tidewrack"
	"github.com/farcloser/tidewrack/internal/cache"
	"github.com/farcloser/tidewrack/internal/integration/clangtidy"
	"github.com/farcloser/tidewrack/internal/ui"
	"github.com/farcloser/tidewrack/version"
)

// analysisOutcome collects what the report needs beyond the diagnostics.
type analysisOutcome struct {
	stats   tidewrack.ParseStats
	cached  int
	missing []string
	failed  []string
	raw     []byte
}

func analyze(
	ctx context.Context,
	settings *reportSettings,
	collector *tidewrack.Collector,
	files []string,
) (*analysisOutcome, error) {
	opts := clangtidy.Options{
		BuildDir:     settings.buildDir,
		Checks:       settings.checks,
		HeaderFilter: settings.headerFilter,
	}

	if settings.jobs > 1 {
		if runner, ok := clangtidy.RunnerAvailable(); ok {
			slog.Debug("analyzing in parallel", "runner", runner, "jobs", settings.jobs)

			return analyzeParallel(ctx, opts, settings, collector, files)
		}

		slog.Warn("run-clang-tidy not found, analyzing sequentially")
	}

	return analyzeSequential(ctx, opts, settings, collector, files)
}

// analyzeParallel hands the whole batch to run-clang-tidy and parses its
// interleaved output in one pass. The cache is not consulted: the runner
// owns scheduling, and its output cannot be attributed per file upfront.
func analyzeParallel(
	ctx context.Context,
	opts clangtidy.Options,
	settings *reportSettings,
	collector *tidewrack.Collector,
	files []string,
) (*analysisOutcome, error) {
	outcome := &analysisOutcome{}

	present := make([]string, 0, len(files))

	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			slog.Warn("source file missing, skipping", "file", file)
			outcome.missing = append(outcome.missing, file)

			continue
		}

		present = append(present, file)
	}

	if len(present) == 0 {
		return nil, errNoSources
	}

	var buf bytes.Buffer

	if err := clangtidy.RunAll(ctx, opts, present, settings.jobs, &buf); err != nil {
		return nil, err
	}

	outcome.raw = buf.Bytes()

	stats, err := collector.Parse(bytes.NewReader(outcome.raw))
	if err != nil {
		return nil, err
	}

	outcome.stats = stats

	return outcome, nil
}

func analyzeSequential(
	ctx context.Context,
	opts clangtidy.Options,
	settings *reportSettings,
	collector *tidewrack.Collector,
	files []string,
) (*analysisOutcome, error) {
	var store *cache.Cache

	if !settings.noCache {
		var err error

		store, err = cache.Open(version.Name())
		if err != nil {
			slog.Warn("result cache unavailable", "error", err)
		}
	}

	if settings.mode == printProgress {
		return analyzeWithUI(ctx, opts, settings, collector, store, files)
	}

	return analyzeLoop(ctx, opts, settings, collector, store, files, nil)
}

type sequentialResult struct {
	outcome *analysisOutcome
	err     error
}

// analyzeWithUI runs the sequential loop in a goroutine and renders its
// events through the progress model until the channel closes.
func analyzeWithUI(
	ctx context.Context,
	opts clangtidy.Options,
	settings *reportSettings,
	collector *tidewrack.Collector,
	store *cache.Cache,
	files []string,
) (*analysisOutcome, error) {
	events := make(chan ui.Event, 256)
	results := make(chan sequentialResult, 1)

	go func() {
		outcome, err := analyzeLoop(ctx, opts, settings, collector, store, files, func(ev ui.Event) {
			events <- ev
		})
		results <- sequentialResult{outcome: outcome, err: err}
		close(events)
	}()

	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, displayName(settings.projectDir, file))
	}

	model := ui.NewProgressModel("clang-tidy", names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))

	_, uiErr := program.Run()

	result := <-results
	if uiErr != nil {
		return result.outcome, uiErr
	}

	return result.outcome, result.err
}

//nolint:gocognit // linear per-file pipeline
func analyzeLoop(
	ctx context.Context,
	opts clangtidy.Options,
	settings *reportSettings,
	collector *tidewrack.Collector,
	store *cache.Cache,
	files []string,
	emit func(ui.Event),
) (*analysisOutcome, error) {
	if emit == nil {
		emit = func(ui.Event) {}
	}

	outcome := &analysisOutcome{}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}

		name := displayName(settings.projectDir, file)

		if _, err := os.Stat(file); err != nil {
			slog.Warn("source file missing, skipping", "file", file)
			outcome.missing = append(outcome.missing, file)
			emit(ui.Event{File: name, Status: ui.StatusError})

			continue
		}

		var key string

		if store != nil {
			var err error

			key, err = cache.Key(file, settings.buildDir, settings.checks, settings.headerFilter)
			if err != nil {
				slog.Warn("cache key failed", "file", file, "error", err)
			} else if diags, hit, getErr := store.Get(key); getErr == nil && hit {
				outcome.cached++
				outcome.stats = outcome.stats.Merge(addAll(collector, diags))
				emit(ui.Event{File: name, Status: ui.StatusCached})
				printFileResult(settings, name, len(diags), true)

				continue
			}
		}

		emit(ui.Event{File: name, Status: ui.StatusAnalyzing})

		output, err := clangtidy.Run(ctx, opts, file)
		if err != nil {
			slog.Warn("analysis failed", "file", file, "error", err)
			outcome.failed = append(outcome.failed, file)
			emit(ui.Event{File: name, Status: ui.StatusError})

			continue
		}

		if settings.saveRaw {
			outcome.raw = append(outcome.raw, output...)

			if !strings.HasSuffix(output, "\n") {
				outcome.raw = append(outcome.raw, '\n')
			}
		}

		parsed, stats := collectOutput(collector, output)

		if store != nil && key != "" {
			if err = store.Put(key, parsed); err != nil {
				slog.Warn("cache write failed", "file", file, "error", err)
			}
		}

		outcome.stats = outcome.stats.Merge(stats)

		emit(ui.Event{File: name, Status: ui.StatusDone})
		printFileResult(settings, name, len(parsed), false)

		if settings.mode == printFull {
			printFindings(parsed)
		}
	}

	return outcome, nil
}

// collectOutput feeds one file's analyzer output into the collection line
// by line and returns the parsed diagnostics, duplicates included, for the
// cache payload. Because duplicates are kept, a cache replay reproduces the
// exact same duplicate and exclusion counters as a fresh run.
func collectOutput(collector *tidewrack.Collector, output string) ([]tidewrack.Diagnostic, tidewrack.ParseStats) {
	var parsed []tidewrack.Diagnostic

	var stats tidewrack.ParseStats

	for line := range strings.SplitSeq(output, "\n") {
		stats.Lines++

		diag, matched := tidewrack.ParseLine(line)
		if !matched {
			continue
		}

		stats.Matched++
		parsed = append(parsed, *diag)

		switch collector.Add(diag) {
		case tidewrack.AddedNew:
			stats.Added++
		case tidewrack.AddedDuplicate:
			stats.Duplicates++
		case tidewrack.AddedExcluded:
			stats.Excluded++
		}
	}

	return parsed, stats
}

// addAll replays cached diagnostics through the collection, so dedup and
// exclusion apply the same way they do to fresh analyzer output.
func addAll(collector *tidewrack.Collector, diags []tidewrack.Diagnostic) tidewrack.ParseStats {
	stats := tidewrack.ParseStats{Matched: len(diags)}

	for _, diag := range diags {
		switch collector.Add(&diag) {
		case tidewrack.AddedNew:
			stats.Added++
		case tidewrack.AddedDuplicate:
			stats.Duplicates++
		case tidewrack.AddedExcluded:
			stats.Excluded++
		}
	}

	return stats
}

func printFileResult(settings *reportSettings, name string, findings int, cached bool) {
	if settings.mode < printVerbose {
		return
	}

	suffix := ""
	if cached {
		suffix = " (cached)"
	}

	fmt.Fprintf(os.Stderr, "  %s: %d findings%s\n", name, findings, suffix)
}

func printFindings(diags []tidewrack.Diagnostic) {
	for _, diag := range diags {
		fmt.Fprintf(os.Stderr, "    %s:%d:%d: %s: %s [%s]\n",
			diag.File, diag.Line, diag.Column, diag.Severity, diag.Message, diag.Check)
	}
}

func displayName(projectDir, file string) string {
	rel, err := filepath.Rel(projectDir, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return file
	}

	return filepath.ToSlash(rel)
}
