package binary

import (
	"os/exec"
)

// Available checks if a binary is available in the system PATH,
// returning its resolved path.
func Available(binName string) (string, bool) {
	path, err := exec.LookPath(binName)

	return path, err == nil
}
