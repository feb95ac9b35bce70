// Package version holds build metadata injected at link time.
package version

// These are overridden via -ldflags at release time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)
