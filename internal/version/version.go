// Package version reports the build version of the simplr binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Version and Commit may be set at link time:
//
//	go build -ldflags="-X github.com/muurk/simplr/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/simplr/internal/version.Commit=abc1234"
//
// Unset values are filled from the module's VCS stamp, then from a dev
// placeholder.
var (
	Version = ""
	Commit  = ""
)

func init() {
	fillFromBuildInfo()
	if Version == "" {
		Version = "dev-" + time.Now().Format("20060102")
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

func fillFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	if rev := settings["vcs.revision"]; Commit == "" && rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if settings["vcs.modified"] == "true" {
			rev += "-dirty"
		}
		Commit = rev
	}
	if Version == "" {
		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			Version = "dev-" + t.Format("20060102")
		}
	}
}

// Full returns the version with its commit.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Platform returns the Go runtime and target, e.g. "go1.24.10 linux/amd64".
func Platform() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
