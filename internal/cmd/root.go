// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obtainium-emulation-pack/oep/internal/cmdtypes"
	"github.com/obtainium-emulation-pack/oep/internal/config"
	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/output"
	"github.com/obtainium-emulation-pack/oep/internal/version"
)

// annotationConfigOptional marks commands that still run when the config
// file cannot be loaded.
const annotationConfigOptional = "oep/config-optional"

// rootFlags holds the persistent flags of the root command.
type rootFlags struct {
	config     string
	source     string
	verbose    bool
	timestamps bool
}

// NewRootCmd creates the root command for the oep CLI.
func NewRootCmd() *cobra.Command {
	cfg := &cmdtypes.GlobalConfig{}
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "oep",
		Short: "Obtainium Emulation Pack tooling",
		Long: `oep maintains the Obtainium Emulation Pack applications document.

It validates and normalizes src/applications.json, tests that every app still
resolves to a downloadable APK, and publishes the release files, the
documentation table and the README.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, flags, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: OEP_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&flags.source, "source", "s", "", "Applications document (env: OEP_SOURCE)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", false, "Show timestamps in log output")

	rootCmd.AddCommand(NewValidateCmd(cfg))
	rootCmd.AddCommand(NewNormalizeCmd(cfg))
	rootCmd.AddCommand(NewExportCmd(cfg))
	rootCmd.AddCommand(NewTableCmd(cfg))
	rootCmd.AddCommand(NewReadmeCmd(cfg))
	rootCmd.AddCommand(NewLinksCmd(cfg))
	rootCmd.AddCommand(NewTestCmd(cfg))
	rootCmd.AddCommand(NewChangesCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd(cfg))

	return rootCmd
}

// initializeGlobals sets up logging and resolves configuration.
func initializeGlobals(c *cobra.Command, flags *rootFlags, cfg *cmdtypes.GlobalConfig) error {
	var timestamps *bool
	if c.Flags().Changed("timestamps") {
		timestamps = output.BoolPtr(flags.timestamps)
	}
	output.SetupLogging(c.ErrOrStderr(), output.LogConfig{Verbose: flags.verbose, Timestamps: timestamps})

	info := version.Get()
	output.Debug("oep started", "version", info.Version, "cue", info.CUEVersion)

	path := config.ResolveConfigPath(flags.config)
	loader := config.NewLoader()
	loaded, err := loader.Load(path.ConfigPath)
	if err != nil {
		if c.Annotations[annotationConfigOptional] != "true" {
			return oerrors.NewExitError(err, oerrors.ExitGeneralError)
		}
		output.Warn("ignoring config file", "path", path.ConfigPath, "error", err)
		loaded = config.DefaultConfig()
	}

	dotenv, err := config.LoadDotEnv(config.DotEnvFile)
	if err != nil {
		output.Warn("ignoring .env file", "error", err)
	}

	values := config.Resolve(loaded, config.Overrides{
		Source:     flags.source,
		Timestamps: timestamps,
		DotEnv:     dotenv,
	})

	// Re-run with the resolved timestamp setting now that config is known.
	output.SetupLogging(c.ErrOrStderr(), output.LogConfig{Verbose: flags.verbose, Timestamps: loaded.Log.Timestamps})

	config.LogResolvedValues(append([]config.ResolvedValue{{
		Key:      "config",
		Value:    path.ConfigPath,
		Source:   path.Source,
		Shadowed: path.Shadowed,
	}}, values...))

	*cfg = cmdtypes.GlobalConfig{
		Config:       loaded,
		ConfigPath:   path.ConfigPath,
		ConfigLoaded: loader.ConfigFileUsed() != "",
		Verbose:      flags.verbose,
	}
	return nil
}

// sourcePath returns the document named on the command line, else the
// configured source.
func sourcePath(args []string, cfg *cmdtypes.GlobalConfig) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cfg.Config.Source
}

// usageError marks bad flag combinations with the general exit code.
func usageError(err error) error {
	return oerrors.NewExitError(err, oerrors.ExitGeneralError)
}
