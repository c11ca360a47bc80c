// Package version reports the build version of shiftdeck.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/muurk/shiftdeck/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/shiftdeck/internal/version.Commit=abc123"
//
// If not set, they are filled from the module build info, or fall back to
// "dev" with a timestamp.
var (
	// Version is the semantic version of the application
	Version = ""
	// Commit is the git commit hash
	Commit = ""
)

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			populateFromBuildInfo(info)
		}
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// populateFromBuildInfo fills Version and Commit from Go's build info.
// `go install ...@v0.3.0` records the module version; builds from a checkout
// record VCS settings instead.
func populateFromBuildInfo(info *debug.BuildInfo) {
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var vcsRevision, vcsModified, vcsTime string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			vcsRevision = setting.Value
		case "vcs.modified":
			vcsModified = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	if Commit == "" && vcsRevision != "" {
		if len(vcsRevision) > 7 {
			Commit = vcsRevision[:7]
		} else {
			Commit = vcsRevision
		}
		if vcsModified == "true" {
			Commit += "-dirty"
		}
	}

	if Version == "" && vcsTime != "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			Version = fmt.Sprintf("dev-%s", t.Format("20060102"))
		}
	}
}

// Short returns the version for headers, e.g. "v0.3.0".
func Short() string {
	return Version
}

// Full returns the full version string including commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
