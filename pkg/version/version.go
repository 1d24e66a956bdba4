// Package version carries build metadata for the showcase binaries.
package version

import (
	"fmt"
	"runtime"
)

// Populated at build time via -ldflags "-X .../pkg/version.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String formats i for a --version style line prefixed by the binary name.
func (i Info) String(binary string) string {
	return fmt.Sprintf("%s %s (%s) built %s with %s on %s",
		binary, i.Version, i.Commit, i.BuildTime, i.GoVersion, i.Platform)
}
