// Package config loads the optional tidewrack.toml project file.
// Command-line flags win over file values; file values win over built-ins.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileName is the project configuration file looked up in the project dir.
const FileName = "tidewrack.toml"

var ErrUnknownKey = errors.New("unknown configuration key")

// Config mirrors the tidewrack.toml layout.
type Config struct {
	Analysis Analysis `toml:"analysis"`
	Report   Report   `toml:"report"`
}

// Analysis holds analyzer defaults.
type Analysis struct {
	Checks       string   `toml:"checks"`
	HeaderFilter string   `toml:"header_filter"`
	Exclude      []string `toml:"exclude"`
	Jobs         int      `toml:"jobs"`
}

// Report holds report output defaults.
type Report struct {
	Output     string   `toml:"output"`
	Formats    []string `toml:"formats"`
	ProjectDir string   `toml:"project_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Report: Report{
			Output:  "clang-tidy-reports",
			Formats: []string{"all"},
		},
	}
}

// Load reads the configuration file at path. A missing file is not an
// error: the defaults apply. Unknown keys are rejected so typos do not
// silently fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownKey, path, undecoded)
	}

	return cfg, nil
}
