// Package compiledb loads and validates compile_commands.json.
package compiledb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/farcloser/tidewrack/internal/exclude"
)

// FileName is the compilation database file name inside the build directory.
const FileName = "compile_commands.json"

var (
	ErrNotFound = errors.New("compilation database not found")
	ErrInvalid  = errors.New("invalid compilation database")
)

// Entry is one translation unit record from the database.
type Entry struct {
	Directory string   `json:"directory"`
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
	File      string   `json:"file"`
	Output    string   `json:"output,omitempty"`
}

//nolint:gochecknoglobals // compiled once at startup
var schema = jsonschema.MustCompileString("compile_commands.schema.json", schemaJSON)

// Load reads <buildDir>/compile_commands.json, validates it against the
// database schema, and returns the entries with File resolved to an
// absolute, cleaned path relative to each entry's Directory.
// A missing or unreadable database is an error: there is nothing to analyze
// without one.
func Load(buildDir string) ([]Entry, error) {
	path := filepath.Join(buildDir, FileName)

	raw, err := os.ReadFile(path) //nolint:gosec // user-specified build directory
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc any
	if err = json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	if err = schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	var entries []Entry
	if err = json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	for i := range entries {
		entries[i].File = resolve(entries[i].Directory, entries[i].File)
	}

	return entries, nil
}

// resolve makes file absolute relative to the entry directory.
func resolve(dir, file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}

	return filepath.Clean(filepath.Join(dir, file))
}

// Partition is the result of splitting database files by exclusion patterns.
type Partition struct {
	// Included is the sorted, deduplicated list of files to analyze.
	Included []string
	// ExcludedBy maps a pattern source to the files it removed.
	ExcludedBy map[string][]string
}

// ExcludedCount returns the total number of excluded files.
func (p Partition) ExcludedCount() int {
	total := 0
	for _, files := range p.ExcludedBy {
		total += len(files)
	}

	return total
}

// Split partitions the database files against the matcher.
// Duplicate entries for the same file (multiple translation units) collapse
// into one.
func Split(entries []Entry, matcher *exclude.Matcher) Partition {
	part := Partition{ExcludedBy: map[string][]string{}}

	seen := map[string]struct{}{}

	for _, entry := range entries {
		if _, ok := seen[entry.File]; ok {
			continue
		}

		seen[entry.File] = struct{}{}

		if pat, matched := matcher.Explain(entry.File); matched {
			part.ExcludedBy[pat.Source] = append(part.ExcludedBy[pat.Source], entry.File)

			continue
		}

		part.Included = append(part.Included, entry.File)
	}

	slices.Sort(part.Included)

	for _, files := range part.ExcludedBy {
		slices.Sort(files)
	}

	return part
}
