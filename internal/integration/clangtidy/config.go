package clangtidy

import (
	"os"
	"path/filepath"
)

// FindConfig locates a .clang-tidy configuration file, checking the current
// directory, the build directory, and up to two parent directories of the
// current one, in that order. Returns the empty string when none is found.
func FindConfig(buildDir string) string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	candidates := []string{
		filepath.Join(cwd, ConfigFileName),
		filepath.Join(buildDir, ConfigFileName),
		filepath.Join(filepath.Dir(cwd), ConfigFileName),
		filepath.Join(filepath.Dir(filepath.Dir(cwd)), ConfigFileName),
	}

	for _, candidate := range candidates {
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate
		}
	}

	return ""
}

// SampleConfig is a starting-point .clang-tidy configuration written by the
// init command.
const SampleConfig = `# clang-tidy configuration
Checks: >
  clang-diagnostic-*,
  clang-analyzer-*,
  google-*,
  modernize-*,
  performance-*,
  readability-*,
  -modernize-use-trailing-return-type,
  -readability-magic-numbers

WarningsAsErrors: ''
HeaderFilterRegex: '.*'
FormatStyle: file

CheckOptions:
  - key: readability-identifier-naming.ClassCase
    value: CamelCase
  - key: readability-identifier-naming.FunctionCase
    value: camelBack
  - key: readability-identifier-naming.VariableCase
    value: lower_case
`
