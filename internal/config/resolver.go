package config

import (
	"os"
	"strconv"

	"github.com/obtainium-emulation-pack/oep/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceDotEnv indicates value came from the .env file.
	SourceDotEnv ConfigSource = "dotenv"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records the winning value for a key and what it shadowed.
type ResolvedValue struct {
	Key      string
	Value    string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// candidate is one value for a key in precedence order.
type candidate struct {
	source ConfigSource
	value  string
}

// resolve picks the first non-empty candidate and records the rest as shadowed.
func resolve(key string, candidates ...candidate) ResolvedValue {
	result := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]string),
	}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

// envValue returns the first set variable among names.
func envValue(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) OEP_CONFIG env, (3) .oep.yaml in the working directory.
func ResolveConfigPath(flagValue string) ResolveConfigPathResult {
	r := resolve("config",
		candidate{SourceFlag, flagValue},
		candidate{SourceEnv, os.Getenv("OEP_CONFIG")},
		candidate{SourceDefault, DefaultConfigFile},
	)
	return ResolveConfigPathResult{
		ConfigPath: r.Value,
		Source:     r.Source,
		Shadowed:   r.Shadowed,
	}
}

// Overrides carries flag values and dotenv contents into Resolve.
type Overrides struct {
	// Source is the --source flag value (empty if not set).
	Source string
	// Timestamps is the --timestamps flag value (nil if not set).
	Timestamps *bool
	// GitHubToken is the --github-token flag value (empty if not set).
	GitHubToken string
	// DotEnv holds values read from the .env file.
	DotEnv map[string]string
}

// stringKey binds a string config key to its env vars and struct field.
type stringKey struct {
	key   string
	env   []string
	field func(*Config) *string
	flag  func(Overrides) string
}

var stringKeys = []stringKey{
	{
		key:   "source",
		env:   []string{"OEP_SOURCE"},
		field: func(c *Config) *string { return &c.Source },
		flag:  func(o Overrides) string { return o.Source },
	},
	{key: "pagesDir", env: []string{"OEP_PAGES_DIR"}, field: func(c *Config) *string { return &c.PagesDir }},
	{key: "tableFile", env: []string{"OEP_TABLE_FILE"}, field: func(c *Config) *string { return &c.TableFile }},
	{key: "readme.output", env: []string{"OEP_README_OUTPUT"}, field: func(c *Config) *string { return &c.Readme.Output }},
	{key: "export.standard", env: []string{"OEP_EXPORT_STANDARD"}, field: func(c *Config) *string { return &c.Export.Standard }},
	{key: "export.dualScreen", env: []string{"OEP_EXPORT_DUAL_SCREEN"}, field: func(c *Config) *string { return &c.Export.DualScreen }},
	{key: "redirectURL", env: []string{"OEP_REDIRECT_URL"}, field: func(c *Config) *string { return &c.RedirectURL }},
}

// Resolve applies flag > env > config > default precedence to cfg in place
// and returns how each value was chosen. Values already in cfg count as
// config values when the file set them and as defaults otherwise.
func Resolve(cfg *Config, o Overrides) []ResolvedValue {
	var values []ResolvedValue

	for _, k := range stringKeys {
		field := k.field(cfg)
		var flagValue string
		if k.flag != nil {
			flagValue = k.flag(o)
		}
		r := resolve(k.key,
			candidate{SourceFlag, flagValue},
			candidate{SourceEnv, envValue(k.env...)},
			fileOrDefault(cfg, k.key, *field),
		)
		*field = r.Value
		values = append(values, r)
	}

	token := resolve("test.githubToken",
		candidate{SourceFlag, o.GitHubToken},
		candidate{SourceEnv, envValue("OEP_GITHUB_TOKEN", "GITHUB_TOKEN")},
		candidate{SourceDotEnv, o.DotEnv["GITHUB_TOKEN"]},
		candidate{SourceConfig, cfg.Test.GitHubToken},
	)
	cfg.Test.GitHubToken = token.Value
	values = append(values, redactToken(token))

	var flagTimestamps string
	if o.Timestamps != nil {
		flagTimestamps = strconv.FormatBool(*o.Timestamps)
	}
	var fileTimestamps string
	if cfg.Log.Timestamps != nil {
		fileTimestamps = strconv.FormatBool(*cfg.Log.Timestamps)
	}
	ts := resolve("log.timestamps",
		candidate{SourceFlag, flagTimestamps},
		candidate{SourceEnv, os.Getenv("OEP_LOG_TIMESTAMPS")},
		candidate{SourceConfig, fileTimestamps},
	)
	if ts.Source != "" {
		if b, err := strconv.ParseBool(ts.Value); err == nil {
			cfg.Log.Timestamps = output.BoolPtr(b)
		}
	}
	values = append(values, ts)

	return values
}

func fileOrDefault(cfg *Config, key, value string) candidate {
	if cfg.FromFile(key) {
		return candidate{SourceConfig, value}
	}
	return candidate{SourceDefault, value}
}

// redactToken hides token values before they reach debug logs.
func redactToken(r ResolvedValue) ResolvedValue {
	out := ResolvedValue{Key: r.Key, Source: r.Source, Shadowed: make(map[ConfigSource]string)}
	if r.Value != "" {
		out.Value = "<redacted>"
	}
	for source := range r.Shadowed {
		out.Shadowed[source] = "<redacted>"
	}
	return out
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		if v.Source == "" {
			continue
		}
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
