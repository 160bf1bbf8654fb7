// Package version provides centralized version information for codegraph.
// All packages reference this single source of truth for version info.
package version

// These variables can be overridden at build time using ldflags:
// go build -ldflags "-X codegraph/internal/version.Version=1.0.0 -X codegraph/internal/version.Commit=abc123"
var (
	// Version is the semantic version of codegraph
	Version = "1.0.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"

	// BuildDate is the build timestamp (set at build time)
	BuildDate = "unknown"
)

// Info returns a formatted version string
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}
