// Package clangtidy shells out to clang-tidy and its parallel runner.
package clangtidy

import "time"

const (
	name       = "clang-tidy"
	runnerName = "run-clang-tidy"

	// Template-heavy translation units can take minutes on their own.
	fileTimeout = 10 * time.Minute

	// ConfigFileName is the analyzer configuration file clang-tidy discovers.
	ConfigFileName = ".clang-tidy"
)

// DefaultChecks is applied when no configuration file is in play.
const DefaultChecks = "clang-diagnostic-*,clang-analyzer-*,google-*,modernize-*,performance-*,readability-*"

// MinimalChecks is applied when configuration use is disabled outright.
const MinimalChecks = "clang-diagnostic-*,clang-analyzer-*"

// Options configures analyzer invocations.
type Options struct {
	// BuildDir holds the compilation database.
	BuildDir string
	// Checks is the -checks value; empty relies on the configuration file.
	Checks string
	// HeaderFilter is the -header-filter value; empty means none.
	HeaderFilter string
	// Timeout bounds a single file analysis; zero uses the default.
	Timeout time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}

	return fileTimeout
}

func (o Options) args() []string {
	args := []string{"-p", o.BuildDir}

	if o.Checks != "" {
		args = append(args, "-checks="+o.Checks)
	}

	if o.HeaderFilter != "" {
		args = append(args, "-header-filter="+o.HeaderFilter)
	}

	return args
}
