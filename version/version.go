package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set via ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the version string
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with commit and build date. Local builds
// fall back to the VCS revision recorded by the Go toolchain, if any.
func GetFullVersion() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (%s, %s)", Version, GitCommit, BuildDate)
	}
	if rev := vcsRevision(); rev != "" {
		return "dev (" + rev + ")"
	}
	return "dev"
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 12 {
			return s.Value[:12]
		}
	}
	return ""
}
