package buildconfig

import "fmt"

// Build-time variables injected via ldflags:
//
//	go build -ldflags "-X github.com/Harshitk-cp/consensus/internal/buildconfig.version=v1.0.0"
var (
	version = "dev"
	commit  = "unknown"
)

// Version returns the build version
func Version() string {
	return version
}

// Commit returns the git commit hash
func Commit() string {
	return commit
}

// String formats version and commit for `cct version`.
func String() string {
	return fmt.Sprintf("cct %s (commit %s)", version, commit)
}
