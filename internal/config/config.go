// Package config provides configuration loading and management.
package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the project-local config file name.
const DefaultConfigFile = ".oep.yaml"

// DefaultRedirectURL forwards "add to Obtainium" links into the app.
const DefaultRedirectURL = "http://apps.obtainium.imranr.dev/redirect.html"

// ReadmeConfig controls README stitching.
type ReadmeConfig struct {
	// Output is the README path written by `oep readme`.
	Output string `mapstructure:"output" yaml:"output"`

	// Sections are the markdown files stitched in order.
	Sections []string `mapstructure:"sections" yaml:"sections"`
}

// ExportConfig names the minified release files.
type ExportConfig struct {
	Standard   string `mapstructure:"standard" yaml:"standard"`
	DualScreen string `mapstructure:"dualScreen" yaml:"dualScreen"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// TestConfig controls live resolver checks.
type TestConfig struct {
	// Timeout bounds each HTTP request.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// MaxReleases is how many releases are fetched per repository.
	MaxReleases int `mapstructure:"maxReleases" yaml:"maxReleases"`

	// GitHubToken authenticates GitHub API calls.
	// Env: GITHUB_TOKEN or OEP_GITHUB_TOKEN, also read from .env.
	GitHubToken string `mapstructure:"githubToken" yaml:"githubToken,omitempty"`
}

// Config represents the oep configuration.
// Loaded from .oep.yaml in the working directory.
type Config struct {
	// Source is the applications document.
	// Env: OEP_SOURCE, Flag: --source
	Source string `mapstructure:"source" yaml:"source"`

	// PagesDir holds the markdown sections of the README.
	PagesDir string `mapstructure:"pagesDir" yaml:"pagesDir"`

	// TableFile is written by `oep table`.
	TableFile string `mapstructure:"tableFile" yaml:"tableFile"`

	Readme ReadmeConfig `mapstructure:"readme" yaml:"readme"`
	Export ExportConfig `mapstructure:"export" yaml:"export"`

	// RedirectURL is the base of generated deep links.
	RedirectURL string `mapstructure:"redirectURL" yaml:"redirectURL"`

	Log  LogConfig  `mapstructure:"log" yaml:"log,omitempty"`
	Test TestConfig `mapstructure:"test" yaml:"test"`

	// fileKeys records which keys were set by the config file.
	fileKeys map[string]bool
}

// DefaultConfig returns a Config with all default values populated.
// Used by `oep config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Source:    "src/applications.json",
		PagesDir:  "pages",
		TableFile: "pages/table.md",
		Readme: ReadmeConfig{
			Output:   "README.md",
			Sections: []string{"pages/header.md", "pages/table.md", "pages/footer.md"},
		},
		Export: ExportConfig{
			Standard:   "obtainium-emulation-pack-latest.json",
			DualScreen: "obtainium-emulation-pack-dual-screen-latest.json",
		},
		RedirectURL: DefaultRedirectURL,
		Test: TestConfig{
			Timeout:     30 * time.Second,
			MaxReleases: 25,
		},
	}
}

// FromFile reports whether key was set by the config file.
func (c *Config) FromFile(key string) bool {
	return c.fileKeys[key]
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c *Config) WithDefaults() *Config {
	d := DefaultConfig()
	out := *c
	if out.Source == "" {
		out.Source = d.Source
	}
	if out.PagesDir == "" {
		out.PagesDir = d.PagesDir
	}
	if out.TableFile == "" {
		out.TableFile = d.TableFile
	}
	if out.Readme.Output == "" {
		out.Readme.Output = d.Readme.Output
	}
	if len(out.Readme.Sections) == 0 {
		out.Readme.Sections = d.Readme.Sections
	}
	if out.Export.Standard == "" {
		out.Export.Standard = d.Export.Standard
	}
	if out.Export.DualScreen == "" {
		out.Export.DualScreen = d.Export.DualScreen
	}
	if out.RedirectURL == "" {
		out.RedirectURL = d.RedirectURL
	}
	if out.Test.Timeout == 0 {
		out.Test.Timeout = d.Test.Timeout
	}
	if out.Test.MaxReleases == 0 {
		out.Test.MaxReleases = d.Test.MaxReleases
	}
	return &out
}

// Render encodes the config as YAML for `oep config init`.
func (c *Config) Render() ([]byte, error) {
	type rendered struct {
		Source      string       `yaml:"source"`
		PagesDir    string       `yaml:"pagesDir"`
		TableFile   string       `yaml:"tableFile"`
		Readme      ReadmeConfig `yaml:"readme"`
		Export      ExportConfig `yaml:"export"`
		RedirectURL string       `yaml:"redirectURL"`
		Log         LogConfig    `yaml:"log,omitempty"`
		Test        struct {
			Timeout     string `yaml:"timeout"`
			MaxReleases int    `yaml:"maxReleases"`
		} `yaml:"test"`
	}
	r := rendered{
		Source:      c.Source,
		PagesDir:    c.PagesDir,
		TableFile:   c.TableFile,
		Readme:      c.Readme,
		Export:      c.Export,
		RedirectURL: c.RedirectURL,
		Log:         c.Log,
	}
	r.Test.Timeout = c.Test.Timeout.String()
	r.Test.MaxReleases = c.Test.MaxReleases
	return yaml.Marshal(r)
}
