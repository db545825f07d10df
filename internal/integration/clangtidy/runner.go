package clangtidy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/tidewrack/internal/integration/binary"
)

// Above this many explicit file arguments the runner is pointed at the
// whole database instead; exclusion filtering then happens at parse time.
const maxRunnerArgs = 512

// RunAll drives the external run-clang-tidy helper over the given files
// with jobs-way parallelism, streaming combined stdout+stderr into sink.
// File-level scheduling is entirely the helper's; the caller only consumes
// the merged diagnostic stream.
func RunAll(ctx context.Context, opts Options, files []string, jobs int, sink io.Writer) error {
	slog.Debug("clangtidy.RunAll", "files", len(files), "jobs", jobs, "build dir", opts.BuildDir)

	runnerPath, found := binary.Available(runnerName)
	if !found {
		return fmt.Errorf("%w: %s", fault.ErrMissingRequirements, runnerName)
	}

	args := append(opts.args(), "-j", strconv.Itoa(max(jobs, 1)))

	if len(files) <= maxRunnerArgs {
		args = append(args, files...)
	}

	//nolint:gosec // file list comes from the user's compilation database
	cmd := exec.CommandContext(ctx, runnerPath, args...)

	cmd.Stdout = sink
	cmd.Stderr = sink

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", fault.ErrTimeout, ctx.Err())
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The runner propagates clang-tidy's finding-based exit code.
			return nil
		}

		return fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, runnerName, err)
	}

	return nil
}
