// Package version holds build information injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/longkey1/translitc/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildTime = "unknown"
)

// BuildInfo is the machine-readable form of the build information
type BuildInfo struct {
	Version   string `json:"version"`
	CommitSHA string `json:"commit"`
	BuildTime string `json:"built"`
	GoVersion string `json:"go"`
	Platform  string `json:"platform"`
}

// Get collects the build information of the running binary
func Get() BuildInfo {
	return BuildInfo{
		Version:   Version,
		CommitSHA: CommitSHA,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Short returns the version number only
func Short() string {
	return Version
}

// Info returns the full version description
func Info() string {
	b := Get()
	return fmt.Sprintf("translitc %s\n  Commit: %s\n  Built: %s\n  Go: %s %s",
		b.Version, b.CommitSHA, b.BuildTime, b.GoVersion, b.Platform)
}
