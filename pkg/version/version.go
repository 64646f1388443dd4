// Package version holds the application version string.
package version

// Version is the current lectorgo version.
// Overridden at build time via -ldflags "-X lectorgo/pkg/version.Version=...".
var Version = "0.3.0"
