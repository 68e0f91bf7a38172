// Package version provides version information for the oep CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build-time variables set via ldflags.
var (
	Version   = "v0.0.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const cueModule = "cuelang.org/go"

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`

	// CUEVersion is the CUE module the embedded schemas are evaluated with.
	CUEVersion string `json:"cueVersion"`
}

// Get returns the version information of the running binary. Values not
// set through ldflags fall back to the module build info, so binaries
// built with go install still report a version.
func Get() Info {
	info := Info{
		Version:    Version,
		GitCommit:  GitCommit,
		BuildDate:  BuildDate,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		CUEVersion: "unknown",
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(&info, bi)
	}
	return info
}

func fromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "v0.0.0-dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, dep := range bi.Deps {
		if dep.Path == cueModule {
			info.CUEVersion = dep.Version
			break
		}
	}
	if info.GitCommit != "unknown" {
		return
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			info.GitCommit = s.Value[:7]
		}
	}
}

func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "oep %s\n", i.Version)
	fmt.Fprintf(&b, "  commit:   %s\n", i.GitCommit)
	fmt.Fprintf(&b, "  built:    %s\n", i.BuildDate)
	fmt.Fprintf(&b, "  go:       %s %s\n", i.GoVersion, i.Platform)
	fmt.Fprintf(&b, "  cue:      %s", i.CUEVersion)
	return b.String()
}

// Short returns the version with its commit, as shown by --version.
func (i Info) Short() string {
	if i.GitCommit == "unknown" || i.GitCommit == "" {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, i.GitCommit)
}
