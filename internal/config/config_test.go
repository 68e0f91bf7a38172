package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "src/applications.json", cfg.Source)
	assert.Equal(t, "pages/table.md", cfg.TableFile)
	assert.Equal(t, "README.md", cfg.Readme.Output)
	assert.Contains(t, cfg.Readme.Sections, cfg.TableFile)
	assert.Equal(t, "obtainium-emulation-pack-latest.json", cfg.Export.Standard)
	assert.Equal(t, "obtainium-emulation-pack-dual-screen-latest.json", cfg.Export.DualScreen)
	assert.Equal(t, DefaultRedirectURL, cfg.RedirectURL)
	assert.Equal(t, 30*time.Second, cfg.Test.Timeout)
	assert.Equal(t, 25, cfg.Test.MaxReleases)
	assert.Nil(t, cfg.Log.Timestamps)
}

func TestWithDefaults(t *testing.T) {
	cfg := &Config{Source: "apps.json", Test: TestConfig{MaxReleases: 5}}
	out := cfg.WithDefaults()

	assert.Equal(t, "apps.json", out.Source)
	assert.Equal(t, 5, out.Test.MaxReleases)
	assert.Equal(t, "pages", out.PagesDir)
	assert.Equal(t, 30*time.Second, out.Test.Timeout)
	assert.Empty(t, cfg.PagesDir, "receiver must not be modified")
}

func TestRender(t *testing.T) {
	data, err := DefaultConfig().Render()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "src/applications.json", raw["source"])
	assert.NotContains(t, raw, "log")

	test, ok := raw["test"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "30s", test["timeout"])
	assert.NotContains(t, test, "githubToken")
}

func TestRenderPassesSchema(t *testing.T) {
	data, err := DefaultConfig().Render()
	require.NoError(t, err)

	v, err := NewValidator()
	require.NoError(t, err)
	assert.NoError(t, v.CheckData(data))
}
