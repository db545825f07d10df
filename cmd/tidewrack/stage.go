package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

//nolint:gochecknoglobals
var (
	stageRunColor  = color.New(color.FgCyan, color.Bold)
	stageOKColor   = color.New(color.FgGreen, color.Bold)
	stageFailColor = color.New(color.FgRed, color.Bold)
)

// stagePrinter writes step markers to stderr so they never mix with
// report data on stdout. Quiet mode drops them entirely.
type stagePrinter struct {
	quiet bool
}

func (s stagePrinter) stamp() string {
	return time.Now().Format("15:04:05")
}

func (s stagePrinter) start(message string) {
	if s.quiet {
		return
	}

	fmt.Fprintf(os.Stderr, "%s %s %s\n", s.stamp(), stageRunColor.Sprint("▶"), message)
}

func (s stagePrinter) ok(message string) {
	if s.quiet {
		return
	}

	fmt.Fprintf(os.Stderr, "%s %s %s\n", s.stamp(), stageOKColor.Sprint("✓"), message)
}

func (s stagePrinter) fail(message string) {
	if s.quiet {
		return
	}

	fmt.Fprintf(os.Stderr, "%s %s %s\n", s.stamp(), stageFailColor.Sprint("✗"), message)
}
