// Package version holds build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/translate/ptlsearch/internal/version.Version=v1.2.0"
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns a one-line description of the build.
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
