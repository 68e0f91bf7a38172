package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// configKeys lists every key a config file may set.
var configKeys = []string{
	"source",
	"pagesDir",
	"tableFile",
	"readme.output",
	"readme.sections",
	"export.standard",
	"export.dualScreen",
	"redirectURL",
	"log.timestamps",
	"test.timeout",
	"test.maxReleases",
	"test.githubToken",
}

// Loader reads a config file over the built-in defaults.
type Loader struct {
	v    *viper.Viper
	used string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")

	d := DefaultConfig()
	v.SetDefault("source", d.Source)
	v.SetDefault("pagesDir", d.PagesDir)
	v.SetDefault("tableFile", d.TableFile)
	v.SetDefault("readme.output", d.Readme.Output)
	v.SetDefault("readme.sections", d.Readme.Sections)
	v.SetDefault("export.standard", d.Export.Standard)
	v.SetDefault("export.dualScreen", d.Export.DualScreen)
	v.SetDefault("redirectURL", d.RedirectURL)
	v.SetDefault("test.timeout", d.Test.Timeout)
	v.SetDefault("test.maxReleases", d.Test.MaxReleases)

	return &Loader{v: v}
}

// Load reads configFile (if it exists) and returns the merged config.
// Environment overrides are applied separately by Resolve so that their
// source can be reported.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	if err := l.v.ReadInConfig(); err != nil {
		if !isNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		l.used = expandedPath
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.fileKeys = make(map[string]bool)
	for _, key := range configKeys {
		if l.v.InConfig(key) {
			cfg.fileKeys[key] = true
		}
	}
	cfg.anchorPaths(expandedPath)

	return cfg.WithDefaults(), nil
}

// anchorPaths resolves relative paths set by the config file against the
// file's directory. Defaults stay relative to the working directory.
func (c *Config) anchorPaths(configFile string) {
	paths := map[string]*string{
		"source":            &c.Source,
		"pagesDir":          &c.PagesDir,
		"tableFile":         &c.TableFile,
		"readme.output":     &c.Readme.Output,
		"export.standard":   &c.Export.Standard,
		"export.dualScreen": &c.Export.DualScreen,
	}
	for key, p := range paths {
		if c.fileKeys[key] {
			*p = RelativeTo(configFile, *p)
		}
	}
	if c.fileKeys["readme.sections"] {
		for i, section := range c.Readme.Sections {
			c.Readme.Sections[i] = RelativeTo(configFile, section)
		}
	}
}

// ConfigFileUsed returns the path of the file read by Load, or "" if none.
func (l *Loader) ConfigFileUsed() string {
	return l.used
}

// LoadDotEnv reads KEY=VALUE pairs from a dotenv file.
// A missing file yields an empty map.
func LoadDotEnv(path string) (map[string]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		if isNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	values := make(map[string]string)
	for _, key := range v.AllKeys() {
		values[strings.ToUpper(key)] = v.GetString(key)
	}
	return values, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
