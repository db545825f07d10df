package clangtidy

import (
	"slices"
	"testing"
	"time"
)

func TestOptionsArgs(t *testing.T) {
	t.Parallel()

	opts := Options{BuildDir: "/proj/build"}
	if got := opts.args(); !slices.Equal(got, []string{"-p", "/proj/build"}) {
		t.Errorf("args = %v", got)
	}

	opts.Checks = "modernize-*"
	opts.HeaderFilter = ".*"

	want := []string{"-p", "/proj/build", "-checks=modernize-*", "-header-filter=.*"}
	if got := opts.args(); !slices.Equal(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}
}

func TestOptionsTimeout(t *testing.T) {
	t.Parallel()

	if got := (Options{}).timeout(); got != fileTimeout {
		t.Errorf("default timeout = %v", got)
	}

	if got := (Options{Timeout: time.Second}).timeout(); got != time.Second {
		t.Errorf("explicit timeout = %v", got)
	}
}
