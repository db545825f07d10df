// Package version exposes build-time identity for the tidewrack binary.
// The variables are meant to be overridden via -ldflags at release time.
package version

//nolint:gochecknoglobals // build-time injected values
var (
	name    = "tidewrack"
	version = "0.1.0-dev"
	commit  = "unknown"
)

// Name returns the binary name.
func Name() string {
	return name
}

// Version returns the semantic version.
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from.
func Commit() string {
	return commit
}
