package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	require.NotEmpty(t, info.GoVersion)
	require.NotEmpty(t, info.CUEVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/obtainium-emulation-pack/oep", Version: "v1.4.0"},
		Deps: []*debug.Module{
			{Path: "github.com/spf13/cobra", Version: "v1.10.2"},
			{Path: "cuelang.org/go", Version: "v0.15.4"},
		},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
	}

	t.Run("fills unset values", func(t *testing.T) {
		info := Info{Version: "v0.0.0-dev", GitCommit: "unknown"}
		fromBuildInfo(&info, bi)
		assert.Equal(t, "v1.4.0", info.Version)
		assert.Equal(t, "0123456", info.GitCommit)
		assert.Equal(t, "v0.15.4", info.CUEVersion)
	})

	t.Run("ldflags win", func(t *testing.T) {
		info := Info{Version: "v2.0.0", GitCommit: "feedbee"}
		fromBuildInfo(&info, bi)
		assert.Equal(t, "v2.0.0", info.Version)
		assert.Equal(t, "feedbee", info.GitCommit)
	})

	t.Run("devel main module", func(t *testing.T) {
		info := Info{Version: "v0.0.0-dev", GitCommit: "unknown"}
		fromBuildInfo(&info, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
		assert.Equal(t, "v0.0.0-dev", info.Version)
		assert.Equal(t, "unknown", info.GitCommit)
	})
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:    "v1.0.0",
		GitCommit:  "abc123",
		BuildDate:  "2026-01-29",
		GoVersion:  "go1.25",
		Platform:   "linux/amd64",
		CUEVersion: "v0.15.4",
	}

	assert.Equal(t, `oep v1.0.0
  commit:   abc123
  built:    2026-01-29
  go:       go1.25 linux/amd64
  cue:      v0.15.4`, info.String())
}

func TestInfoShort(t *testing.T) {
	assert.Equal(t, "v1.2.3", Info{Version: "v1.2.3", GitCommit: "unknown"}.Short())
	assert.Equal(t, "v1.2.3 (abc123)", Info{Version: "v1.2.3", GitCommit: "abc123"}.Short())
}
