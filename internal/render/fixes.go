package render

import (
	"fmt"
	"io"
)

// FixScriptName is the file name of the generated remediation script.
const FixScriptName = "apply_fixes.sh"

// WriteFixScript emits a shell script replaying the analysis with -fix
// enabled. A tarball of the tracked sources is taken first so the rewrite
// can be undone.
func (r *Report) WriteFixScript(w io.Writer) error {
	checks := r.Checks
	if checks == "" {
		checks = "*"
	}

	_, err := fmt.Fprintf(w, `#!/usr/bin/env bash
# Generated %s — applies clang-tidy fixes for the findings in this report.
set -euo pipefail

BUILD_DIR=%q
BACKUP="tidy-backup-$(date +%%Y%%m%%d-%%H%%M%%S).tar.gz"

echo "Backing up sources to ${BACKUP}"
tar -czf "${BACKUP}" --exclude="${BUILD_DIR}" --exclude='.git' .

echo "Applying fixes"
run-clang-tidy -p "${BUILD_DIR}" -fix -checks=%q -j "$(nproc)"

echo "Done. Review the changes, then delete ${BACKUP}."
`, r.GeneratedAt.Format("2006-01-02 15:04:05"), r.BuildDir, checks)

	return err
}
