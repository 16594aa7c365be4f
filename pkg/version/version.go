// Package version contains build information for chatcomplete.
package version

import "fmt"

var (
	// Version is the released version, set with -ldflags at build time.
	Version = "dev"
	// BuildTime is when the binary was built.
	BuildTime = "unknown"
	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"
)

// String returns a one-line description used by `chatcomplete --version`.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
