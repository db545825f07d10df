package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/tidewrack/internal/integration/clangtidy"
)

var errConfigExists = errors.New("configuration file already exists, refusing to overwrite")

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a sample " + clangtidy.ConfigFileName + " configuration",
		ArgsUsage: "[directory]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			dir := "."
			if cmd.NArg() > 0 {
				dir = cmd.Args().First()
			}

			return runInit(dir)
		},
	}
}

func runInit(dir string) error {
	path := filepath.Join(dir, clangtidy.ConfigFileName)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", errConfigExists, path)
	}

	if err := os.WriteFile(path, []byte(clangtidy.SampleConfig), 0o644); err != nil { //nolint:gosec // configuration file
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Println("wrote", path)

	return nil
}
