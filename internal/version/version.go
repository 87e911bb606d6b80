// Package version exposes build metadata, set via -ldflags at build
// time and reported by the command-line tools.
package version

var (
	// Version is the current module version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
