package tidewrack

import (
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	t.Parallel()

	diag, ok := ParseLine("foo.cpp:10:5: warning: unused variable 'x' [clang-diagnostic-unused-variable]")
	if !ok {
		t.Fatal("line must parse")
	}

	if diag.File != "foo.cpp" {
		t.Errorf("file = %q", diag.File)
	}

	if diag.Line != 10 || diag.Column != 5 {
		t.Errorf("position = %d:%d, want 10:5", diag.Line, diag.Column)
	}

	if diag.Severity != SeverityWarning {
		t.Errorf("severity = %v", diag.Severity)
	}

	if diag.Message != "unused variable 'x'" {
		t.Errorf("message = %q", diag.Message)
	}

	if diag.Check != "clang-diagnostic-unused-variable" {
		t.Errorf("check = %q", diag.Check)
	}
}

func TestParseLineVariants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		line string
		ok   bool
	}{
		{"/abs/path/a.cpp:1:1: error: something broke [clang-analyzer-core.NullDereference]", true},
		{"a.cpp:3:7: note: expanded from macro 'X' [clang-diagnostic-macro]", true},
		{"C:/work/a.cpp:12:40: warning: message with: colons [readability-identifier-naming]", true},
		{"a.cpp:1:1: warning: message with [brackets] inside [modernize-use-auto]", true},

		// Non-diagnostic chatter must be skipped silently.
		{"    int x = 0;", false},
		{"    ^", false},
		{"12345 warnings generated.", false},
		{"Suppressed 12340 warnings (12340 in non-user code).", false},
		{"a.cpp:1:1: warning: message without check id", false},
		{"a.cpp:one:1: warning: bad line number [check]", false},
		{"a.cpp:1:1: fatal: unknown severity [check]", false},
		{"", false},
	}

	for _, tc := range cases {
		if _, ok := ParseLine(tc.line); ok != tc.ok {
			t.Errorf("ParseLine(%q) matched = %v, want %v", tc.line, ok, tc.ok)
		}
	}
}

func TestParseLineMessageWithBrackets(t *testing.T) {
	t.Parallel()

	diag, ok := ParseLine("a.cpp:1:1: warning: message with [brackets] inside [modernize-use-auto]")
	if !ok {
		t.Fatal("line must parse")
	}

	if diag.Message != "message with [brackets] inside" {
		t.Errorf("message = %q", diag.Message)
	}

	if diag.Check != "modernize-use-auto" {
		t.Errorf("check = %q", diag.Check)
	}
}

func TestParseStats(t *testing.T) {
	t.Parallel()

	output := strings.Join([]string{
		"a.cpp:1:1: warning: first [check-one]",
		"some chatter",
		"a.cpp:1:1: warning: first [check-one]",
		"b.cpp:2:2: error: second [check-two]",
	}, "\n")

	collector := NewCollector(nil)

	stats, err := collector.Parse(strings.NewReader(output))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if stats.Lines != 4 {
		t.Errorf("lines = %d, want 4", stats.Lines)
	}

	if stats.Matched != 3 {
		t.Errorf("matched = %d, want 3", stats.Matched)
	}

	if stats.Added != 2 {
		t.Errorf("added = %d, want 2", stats.Added)
	}

	if stats.Duplicates != 1 {
		t.Errorf("duplicates = %d, want 1", stats.Duplicates)
	}
}

func TestParseIdempotent(t *testing.T) {
	t.Parallel()

	output := "a.cpp:1:1: warning: first [check-one]\nb.cpp:2:2: error: second [check-two]\n"

	collector := NewCollector(nil)
	collector.ParseString(output)

	before := collector.Len()

	stats := collector.ParseString(output)
	if collector.Len() != before {
		t.Errorf("re-parse changed collection size: %d -> %d", before, collector.Len())
	}

	if stats.Added != 0 || stats.Duplicates != 2 {
		t.Errorf("re-parse stats = %+v, want 0 added, 2 duplicates", stats)
	}
}
