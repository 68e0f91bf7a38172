package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obtainium-emulation-pack/oep/internal/cmdtypes"
	"github.com/obtainium-emulation-pack/oep/internal/cmdutil"
	"github.com/obtainium-emulation-pack/oep/internal/config"
	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/output"
)

const configHeader = "# oep configuration\n# Paths are relative to this file.\n\n"

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with default values",
		Long: `Create a new oep configuration file with default values.

The file is created at .oep.yaml in the working directory by default.
Use --config to choose a different location.`,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(c, cfg, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runConfigInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	path, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !force {
		return oerrors.NewExitError(
			fmt.Errorf("config file already exists at %s (use --force to overwrite)", path),
			oerrors.ExitGeneralError,
		)
	}

	data, err := config.DefaultConfig().Render()
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := cmdutil.WriteFile(path, append([]byte(configHeader), data...)); err != nil {
		return err
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("config file created: "+path))
	return nil
}
