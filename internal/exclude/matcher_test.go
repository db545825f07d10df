package exclude

import "testing"

func TestMatcherExcluded(t *testing.T) {
	t.Parallel()

	matcher, err := NewMatcher([]string{"external/**", "**/test/**", "*.generated.cpp"})
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	if !matcher.Excluded("src/external/lib/file.cpp") {
		t.Error("src/external/lib/file.cpp must be excluded")
	}

	if !matcher.Excluded("foo/test/bar.cpp") {
		t.Error("foo/test/bar.cpp must be excluded")
	}

	if matcher.Excluded("foo/bar.cpp") {
		t.Error("foo/bar.cpp must not be excluded")
	}

	if !matcher.Excluded("src/api.generated.cpp") {
		t.Error("src/api.generated.cpp must be excluded")
	}
}

func TestMatcherExplain(t *testing.T) {
	t.Parallel()

	matcher, err := NewMatcher([]string{"external/**", "**/test/**"})
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	pat, matched := matcher.Explain("vendor/test/a.cpp")
	if !matched {
		t.Fatal("vendor/test/a.cpp must match")
	}

	if pat.Source != "**/test/**" {
		t.Errorf("matched pattern = %q, want %q", pat.Source, "**/test/**")
	}

	if _, matched = matcher.Explain("vendor/a.cpp"); matched {
		t.Error("vendor/a.cpp must not match")
	}
}

func TestMatcherNil(t *testing.T) {
	t.Parallel()

	var matcher *Matcher

	if matcher.Excluded("anything.cpp") {
		t.Error("nil matcher must exclude nothing")
	}

	if !matcher.Empty() {
		t.Error("nil matcher must be empty")
	}
}

func TestParseList(t *testing.T) {
	t.Parallel()

	matcher, err := ParseList("external/**, , build/**")
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}

	if len(matcher.Patterns()) != 2 {
		t.Fatalf("patterns = %d, want 2", len(matcher.Patterns()))
	}

	if !matcher.Excluded("build/out.cpp") {
		t.Error("build/out.cpp must be excluded")
	}
}

func TestParseListRejectsEmptyPattern(t *testing.T) {
	t.Parallel()

	if _, err := NewMatcher([]string{"external/**", ""}); err == nil {
		t.Fatal("empty pattern must be rejected")
	}
}
