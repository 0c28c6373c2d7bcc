// Package cmd holds the gedcheck build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/thoreinstein/gedcheck/cmd.Version=1.2.0" ./cmd/gedcheck
package cmd

import "runtime"

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// GoVersion returns the Go toolchain the binary was built with.
func GoVersion() string {
	return runtime.Version()
}
