package tidewrack

import (
	"testing"
	"time"

	"github.com/farcloser/tidewrack/internal/exclude"
)

func sample(file string, line int, check string) *Diagnostic {
	return &Diagnostic{
		File:     file,
		Line:     line,
		Column:   1,
		Severity: SeverityWarning,
		Message:  "message",
		Check:    check,
	}
}

func TestCollectorDeduplicates(t *testing.T) {
	t.Parallel()

	collector := NewCollector(nil)

	if got := collector.Add(sample("a.cpp", 1, "check-one")); got != AddedNew {
		t.Fatalf("first add = %v, want AddedNew", got)
	}

	if got := collector.Add(sample("a.cpp", 1, "check-one")); got != AddedDuplicate {
		t.Fatalf("second add = %v, want AddedDuplicate", got)
	}

	if collector.Len() != 1 {
		t.Errorf("len = %d, want 1", collector.Len())
	}

	if collector.Duplicates() != 1 {
		t.Errorf("duplicates = %d, want 1", collector.Duplicates())
	}
}

func TestCollectorKeyIsFullTuple(t *testing.T) {
	t.Parallel()

	collector := NewCollector(nil)
	collector.Add(sample("a.cpp", 1, "check-one"))

	// Any field differing makes a distinct diagnostic.
	variants := []*Diagnostic{
		sample("b.cpp", 1, "check-one"),
		sample("a.cpp", 2, "check-one"),
		sample("a.cpp", 1, "check-two"),
	}

	other := sample("a.cpp", 1, "check-one")
	other.Column = 9
	variants = append(variants, other)

	other = sample("a.cpp", 1, "check-one")
	other.Severity = SeverityError
	variants = append(variants, other)

	other = sample("a.cpp", 1, "check-one")
	other.Message = "different"
	variants = append(variants, other)

	for _, diag := range variants {
		if got := collector.Add(diag); got != AddedNew {
			t.Errorf("add %+v = %v, want AddedNew", diag.Key(), got)
		}
	}

	if collector.Len() != 7 {
		t.Errorf("len = %d, want 7", collector.Len())
	}
}

func TestCollectorExcludes(t *testing.T) {
	t.Parallel()

	matcher, err := exclude.NewMatcher([]string{"external/**"})
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	collector := NewCollector(matcher)

	if got := collector.Add(sample("src/external/lib.cpp", 1, "check-one")); got != AddedExcluded {
		t.Fatalf("add = %v, want AddedExcluded", got)
	}

	collector.Add(sample("src/main.cpp", 1, "check-one"))

	if collector.Len() != 1 {
		t.Errorf("len = %d, want 1", collector.Len())
	}

	if collector.Excluded() != 1 {
		t.Errorf("excluded = %d, want 1", collector.Excluded())
	}

	if _, ok := collector.FileCounts()["src/external/lib.cpp"]; ok {
		t.Error("excluded file must not appear in per-file tallies")
	}
}

func TestCollectorFirstSeenOrder(t *testing.T) {
	t.Parallel()

	collector := NewCollector(nil)
	collector.Add(sample("b.cpp", 2, "check-two"))
	collector.Add(sample("a.cpp", 1, "check-one"))
	collector.Add(sample("c.cpp", 3, "check-three"))

	diags := collector.Diagnostics()
	if len(diags) != 3 {
		t.Fatalf("len = %d, want 3", len(diags))
	}

	if diags[0].File != "b.cpp" || diags[1].File != "a.cpp" || diags[2].File != "c.cpp" {
		t.Errorf("order = %s, %s, %s", diags[0].File, diags[1].File, diags[2].File)
	}
}

func TestCollectorGroupingsSumToTotal(t *testing.T) {
	t.Parallel()

	collector := NewCollector(nil)
	collector.Add(sample("a.cpp", 1, "check-one"))
	collector.Add(sample("a.cpp", 2, "check-two"))
	collector.Add(sample("b.cpp", 3, "check-one"))

	errDiag := sample("b.cpp", 4, "check-three")
	errDiag.Severity = SeverityError
	collector.Add(errDiag)

	total := collector.Len()

	sum := 0
	for _, diags := range collector.ByFile() {
		sum += len(diags)
	}

	if sum != total {
		t.Errorf("ByFile sum = %d, want %d", sum, total)
	}

	sum = 0
	for _, diags := range collector.ByCheck() {
		sum += len(diags)
	}

	if sum != total {
		t.Errorf("ByCheck sum = %d, want %d", sum, total)
	}

	sum = 0
	for _, diags := range collector.BySeverity() {
		sum += len(diags)
	}

	if sum != total {
		t.Errorf("BySeverity sum = %d, want %d", sum, total)
	}
}

func TestCollectorStampsTimestamp(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	collector := NewCollector(nil)
	collector.now = func() time.Time { return fixed }

	collector.Add(sample("a.cpp", 1, "check-one"))

	if got := collector.Diagnostics()[0].Timestamp; !got.Equal(fixed) {
		t.Errorf("timestamp = %v, want %v", got, fixed)
	}
}
