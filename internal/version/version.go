// Package version holds build metadata injected via ldflags.
package version

var (
	Version = "dev"
	Commit  = "unknown"
)

// String renders the metadata for startup logs: "dev (unknown)".
func String() string {
	return Version + " (" + Commit + ")"
}
