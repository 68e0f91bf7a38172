// Package cmdtypes provides shared types for the cmd package and cmdutil.
// It is separate from internal/cmd to avoid import cycles.
package cmdtypes

import "github.com/obtainium-emulation-pack/oep/internal/config"

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is created once by NewRootCmd and passed into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the resolved configuration. Nil until PersistentPreRunE runs.
	Config *config.Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// ConfigLoaded reports whether ConfigPath existed and was read.
	ConfigLoaded bool

	Verbose bool
}
