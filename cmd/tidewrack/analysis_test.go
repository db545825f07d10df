package main

import (
	"testing"

	"github.com/farcloser/tidewrack"
)

const duplicateOutput = "foo.cpp:10:5: warning: unused variable 'x' [clang-diagnostic-unused-variable]\n" +
	"foo.cpp:10:5: warning: unused variable 'x' [clang-diagnostic-unused-variable]\n" +
	"foo.cpp:20:1: error: use of undeclared identifier [clang-diagnostic-error]\n"

func TestCollectOutputCountsIntraFileDuplicates(t *testing.T) {
	t.Parallel()

	collector := tidewrack.NewCollector(nil)

	parsed, stats := collectOutput(collector, duplicateOutput)

	if len(parsed) != 3 {
		t.Fatalf("parsed = %d, want every matched line kept for the cache", len(parsed))
	}

	if stats.Added != 2 || stats.Duplicates != 1 {
		t.Errorf("stats = %+v, want 2 added and 1 duplicate", stats)
	}

	if collector.Len() != 2 {
		t.Errorf("collected = %d, want 2", collector.Len())
	}

	if collector.Duplicates() != 1 {
		t.Errorf("duplicate counter = %d, want 1", collector.Duplicates())
	}
}

func TestCacheReplayMatchesFreshRun(t *testing.T) {
	t.Parallel()

	fresh := tidewrack.NewCollector(nil)
	parsed, freshStats := collectOutput(fresh, duplicateOutput)

	replayed := tidewrack.NewCollector(nil)
	replayStats := addAll(replayed, parsed)

	if replayStats.Added != freshStats.Added || replayStats.Duplicates != freshStats.Duplicates {
		t.Errorf("replay stats = %+v, fresh stats = %+v", replayStats, freshStats)
	}

	if replayed.Len() != fresh.Len() || replayed.Duplicates() != fresh.Duplicates() {
		t.Errorf("replay collected %d with %d duplicates, fresh collected %d with %d duplicates",
			replayed.Len(), replayed.Duplicates(), fresh.Len(), fresh.Duplicates())
	}
}

func TestResolveProjectDir(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cfgValue string
		base     string
		expected string
	}{
		{"", "/work", "/work"},
		{"/src/project", "/work", "/src/project"},
		{"/src/project/", "/work", "/src/project"},
		{"sub/dir", "/work", "/work/sub/dir"},
	}

	for _, testCase := range cases {
		if got := resolveProjectDir(testCase.cfgValue, testCase.base); got != testCase.expected {
			t.Errorf("resolveProjectDir(%q, %q) = %q, want %q",
				testCase.cfgValue, testCase.base, got, testCase.expected)
		}
	}
}
