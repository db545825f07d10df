package clangtidy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/tidewrack/internal/integration/binary"
)

// Version probes the clang-tidy binary and returns its version banner line.
// It requires clang-tidy to be available in the system PATH.
func Version(ctx context.Context) (string, error) {
	tidyPath, found := binary.Available(name)
	if !found {
		return "", fmt.Errorf("%w: %s", fault.ErrMissingRequirements, name)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, tidyPath, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s --version: %w", fault.ErrCommandFailure, name, err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "version") {
			return line, nil
		}
	}

	return strings.TrimSpace(string(output)), nil
}

// RunnerAvailable reports whether the external parallel runner is on PATH.
func RunnerAvailable() (string, bool) {
	return binary.Available(runnerName)
}

// Run analyzes one file and returns the combined stdout+stderr text.
// clang-tidy exits non-zero when it finds errors; as long as it produced
// output, that is a successful analysis, not a failure.
func Run(ctx context.Context, opts Options, filePath string) (string, error) {
	slog.Debug("clangtidy.Run", "file path", filePath, "build dir", opts.BuildDir)

	tidyPath, found := binary.Available(name)
	if !found {
		return "", fmt.Errorf("%w: %s", fault.ErrMissingRequirements, name)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout())
	defer cancel()

	args := append(opts.args(), filePath)

	//nolint:gosec // filePath comes from the user's compilation database
	cmd := exec.CommandContext(ctx, tidyPath, args...)

	var combined bytes.Buffer

	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: after %v", fault.ErrTimeout, opts.timeout())
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && combined.Len() > 0 {
			// Findings present; the exit code only reflects their severity.
			return combined.String(), nil
		}

		return "", fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, combined.String(), err)
	}

	return combined.String(), nil
}
