package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit and BuildTime are set via ldflags at build time:
//
//	go build -ldflags "-X github.com/heartmarshall/crudkit/internal/app.Version=1.0.0" ./cmd/server
//
// Unset values fall back to the VCS stamp recorded by the Go toolchain.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs and the
// health endpoint.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		commit, built = vcsStamp(info.Settings, commit, built)
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, commit, built)
}

func vcsStamp(settings []debug.BuildSetting, commit, built string) (string, string) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" && len(s.Value) >= 12 {
				commit = s.Value[:12]
			}
		case "vcs.time":
			if built == "unknown" {
				built = s.Value
			}
		}
	}
	return commit, built
}
