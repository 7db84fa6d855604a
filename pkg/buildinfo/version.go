// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/licensetool/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/licensetool/pkg/buildinfo.Commit=$(git rev-parse HEAD)" \
//	    ./cmd/licensetool
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v0.3.0").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s)\n", Version, Commit)
}
