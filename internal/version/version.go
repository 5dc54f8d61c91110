// Package version holds the reckless version string.
package version

// Version is the current reckless version.
// Overridden at build time via -ldflags "-X ...version.Version=v1.2.3".
var Version = "dev"
