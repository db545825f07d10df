//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/tidewrack/internal/exclude"
)

var errMatchArgs = errors.New("expected exactly one argument: path to test")

func matchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Test which exclusion pattern, if any, matches a path",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "exclude",
				Aliases:  []string{"e"},
				Usage:    "Comma-separated path patterns to evaluate (supports *, ?, and **)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errMatchArgs, cmd.NArg())
			}

			matcher, err := exclude.ParseList(cmd.String("exclude"))
			if err != nil {
				return err
			}

			return runMatch(cmd.Args().First(), matcher, cmd.String("format"))
		},
	}
}

func runMatch(path string, matcher *exclude.Matcher, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	meta := map[string]any{
		"excluded": false,
	}

	patterns := make([]any, 0, len(matcher.Patterns()))
	for _, pattern := range matcher.Patterns() {
		patterns = append(patterns, pattern.Source)
	}

	meta["patterns"] = patterns

	if pattern, excluded := matcher.Explain(path); excluded {
		meta["excluded"] = true
		meta["matched_by"] = pattern.Source
		meta["kind"] = pattern.Kind().String()
	}

	data := &format.Data{
		Object: path,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}
