package app

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/heartmarshall/kotoba-backend/internal/app.Version=...".
// Values left unset are filled from the VCS stamp of the binary.
var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
)

// Build identifies the running importer binary.
type Build struct {
	Version   string
	Commit    string
	Time      string
	GoVersion string
}

// CurrentBuild combines the link-time values with the embedded build info.
func CurrentBuild() Build {
	info, _ := debug.ReadBuildInfo()
	return newBuild(info, Version, Commit, BuildTime)
}

func newBuild(info *debug.BuildInfo, version, commit, built string) Build {
	b := Build{Version: version, Commit: commit, Time: built}
	if info != nil {
		b.GoVersion = info.GoVersion
		if b.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			b.Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if b.Time == "" {
					b.Time = s.Value
				}
			}
		}
	}

	b.Version = orUnknown(b.Version, "dev")
	b.Commit = orUnknown(b.Commit, "unknown")
	b.Time = orUnknown(b.Time, "unknown")
	return b
}

// String is the form printed by "kotoba --version".
func (b Build) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", b.Version, b.Commit, b.Time)
}

// LogValue groups the build fields in structured logs.
func (b Build) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("version", b.Version),
		slog.String("commit", b.Commit),
		slog.String("built", b.Time),
		slog.String("go", b.GoVersion),
	)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

func orUnknown(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
