// Package version holds the stp release version, overridable at build time.
package version

// Version is set via -ldflags "-X stp/internal/version.Version=..."
var Version = "0.4.0"
