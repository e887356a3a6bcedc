// Package version holds build metadata injected with -ldflags:
//
//	go build -ldflags "-X github.com/smazurov/torchnode/internal/version.Version=v1.2.0"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info is the build metadata reported by /api/version and the update command.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// IsDev reports whether the binary was built without a release version.
// Development builds never self-update.
func IsDev() bool {
	return Version == "" || Version == "dev"
}

// Semver returns Version without a leading "v", as go-selfupdate expects.
func Semver() string {
	return strings.TrimPrefix(Version, "v")
}

// String formats the metadata for the --version flag.
func String() string {
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("torchnode %s (%s, %s) %s", Version, commit, BuildDate, runtime.Version())
}
