package compiledb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/farcloser/tidewrack/internal/exclude"
)

func writeDB(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600); err != nil {
		t.Fatalf("writing database: %v", err)
	}

	return dir
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := writeDB(t, `[
		{"directory": "/proj/build", "command": "clang++ -c ../src/main.cpp", "file": "../src/main.cpp"},
		{"directory": "/proj/build", "arguments": ["clang++", "-c", "/proj/src/util.cpp"], "file": "/proj/src/util.cpp"}
	]`)

	entries, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}

	if entries[0].File != filepath.Clean("/proj/src/main.cpp") {
		t.Errorf("relative path not resolved: %q", entries[0].File)
	}

	if entries[1].File != filepath.Clean("/proj/src/util.cpp") {
		t.Errorf("absolute path mangled: %q", entries[1].File)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
	}{
		{"not json", "garbage"},
		{"not an array", `{"directory": "/b", "command": "cc", "file": "a.cpp"}`},
		{"missing file", `[{"directory": "/b", "command": "cc"}]`},
		{"missing command and arguments", `[{"directory": "/b", "file": "a.cpp"}]`},
		{"empty directory", `[{"directory": "", "command": "cc", "file": "a.cpp"}]`},
	}

	for _, tc := range cases {
		dir := writeDB(t, tc.content)

		if _, err := Load(dir); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: err = %v, want ErrInvalid", tc.name, err)
		}
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Directory: "/p", File: "/p/src/main.cpp"},
		{Directory: "/p", File: "/p/external/lib.cpp"},
		{Directory: "/p", File: "/p/src/test/main_test.cpp"},
		{Directory: "/p", File: "/p/src/main.cpp"}, // duplicate translation unit
	}

	matcher, err := exclude.NewMatcher([]string{"external/**", "**/test/**"})
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	part := Split(entries, matcher)

	if len(part.Included) != 1 || part.Included[0] != "/p/src/main.cpp" {
		t.Errorf("included = %v", part.Included)
	}

	if part.ExcludedCount() != 2 {
		t.Errorf("excluded = %d, want 2", part.ExcludedCount())
	}

	if files := part.ExcludedBy["external/**"]; len(files) != 1 {
		t.Errorf("external/** excluded %v", files)
	}
}

func TestSplitNoMatcher(t *testing.T) {
	t.Parallel()

	part := Split([]Entry{{Directory: "/p", File: "/p/a.cpp"}}, nil)

	if len(part.Included) != 1 || part.ExcludedCount() != 0 {
		t.Errorf("partition = %+v", part)
	}
}
