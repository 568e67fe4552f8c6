// Package version provides build-time version information for mtx.
package version

import "fmt"

// These variables are set at build time via ldflags:
//
//	-X github.com/open-cli-collective/mtext-cli/internal/version.Version=...
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the one-line version banner printed by --version.
func String() string {
	return fmt.Sprintf("mtx version %s (commit: %s, built: %s)", Version, Commit, Date)
}
