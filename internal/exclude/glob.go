package exclude

import "strings"

// NormalizePath prepares a path for matching: backslashes become forward
// slashes, duplicate slashes collapse, and a leading "./" is stripped.
func NormalizePath(raw string) string {
	if strings.Contains(raw, `\`) {
		raw = strings.ReplaceAll(raw, `\`, `/`)
	}

	for strings.Contains(raw, "//") {
		raw = strings.ReplaceAll(raw, "//", "/")
	}

	return strings.TrimPrefix(raw, "./")
}

// normalizePattern applies the same normalization to pattern text.
func normalizePattern(raw string) string {
	return NormalizePath(strings.TrimSpace(raw))
}

// matchGlob matches a glob pattern against a path fragment.
// "*" and "?" never cross a "/" boundary; "**" matches any run of
// characters including separators.
func matchGlob(pattern, input string) bool {
	for len(pattern) > 0 {
		switch {
		case strings.HasPrefix(pattern, "**"):
			rest := pattern[2:]
			for i := 0; ; i++ {
				if matchGlob(rest, input[i:]) {
					return true
				}

				if i >= len(input) {
					return false
				}
			}
		case pattern[0] == '*':
			rest := pattern[1:]
			for i := 0; ; i++ {
				if matchGlob(rest, input[i:]) {
					return true
				}

				if i >= len(input) || input[i] == '/' {
					return false
				}
			}
		case pattern[0] == '?':
			if input == "" || input[0] == '/' {
				return false
			}

			pattern = pattern[1:]
			input = input[1:]
		default:
			if input == "" || input[0] != pattern[0] {
				return false
			}

			pattern = pattern[1:]
			input = input[1:]
		}
	}

	return input == ""
}
