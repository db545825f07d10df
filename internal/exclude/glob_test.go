package exclude

import "testing"

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{`a\b\c.cpp`, "a/b/c.cpp"},
		{"a//b///c.cpp", "a/b/c.cpp"},
		{"./a/b.cpp", "a/b.cpp"},
		{"a/b.cpp", "a/b.cpp"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizePath(tc.in); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"*.cpp", "file.cpp", true},
		{"*.cpp", "dir/file.cpp", false}, // "*" does not cross "/"
		{"a/*.cpp", "a/file.cpp", true},
		{"a/*.cpp", "a/b/file.cpp", false},
		{"?.c", "a.c", true},
		{"?.c", "ab.c", false},
		{"?", "/", false},
		{"a**b", "a/x/b", true}, // "**" crosses separators
		{"a**b", "axb", true},
		{"test/**", "test/deep/file.cpp", true},
		{"test/**", "test", false},
		{"**", "", true},
		{"*", "", true},
		{"", "", true},
		{"", "x", false},
		{"a*c*e", "abcde", true},
		{"a*c*e", "abde", false},
	}

	for _, tc := range cases {
		if got := matchGlob(tc.pattern, tc.input); got != tc.want {
			t.Errorf("matchGlob(%q, %q) = %v, want %v", tc.pattern, tc.input, got, tc.want)
		}
	}
}
