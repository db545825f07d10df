//nolint:wrapcheck
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/tidewrack/internal/integration/clangtidy"
)

func doctorCommand() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Verify that the analyzer toolchain is available",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctor(ctx, cmd.String("format"))
		},
	}
}

func runDoctor(ctx context.Context, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	meta := map[string]any{}

	toolVersion, versionErr := clangtidy.Version(ctx)
	if versionErr != nil {
		meta["clang-tidy"] = "not found"
	} else {
		meta["clang-tidy"] = toolVersion
	}

	if runner, ok := clangtidy.RunnerAvailable(); ok {
		meta["run-clang-tidy"] = runner
	} else {
		meta["run-clang-tidy"] = "not found (parallel analysis unavailable)"
	}

	data := &format.Data{
		Object: "toolchain",
		Meta:   meta,
	}

	if err = formatter.PrintAll([]*format.Data{data}, os.Stdout); err != nil {
		return err
	}

	return versionErr
}
