package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obtainium-emulation-pack/oep/internal/cmdtypes"
	"github.com/obtainium-emulation-pack/oep/internal/config"
	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the config file",
		Long: `Validate the oep configuration file against its embedded schema.

Unknown keys, wrongly typed values and inconsistent settings are reported
per field.`,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, cfg)
		},
	}
}

func runConfigVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	path, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	if _, err := os.Stat(path); err != nil {
		return oerrors.NewExitError(
			oerrors.NewNotFoundError("config file not found", path, "run 'oep config init' to create one"),
			oerrors.ExitNotFound,
		)
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(path); err != nil {
		var validationErrs config.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(c.ErrOrStderr(), output.FormatCross("config validation failed: "+path))
			for _, e := range validationErrs {
				fmt.Fprintf(c.ErrOrStderr(), "  %s: %s\n", output.StyleNoun.Render(e.Field), e.Message)
			}
			return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
		}
		return fmt.Errorf("validating config: %w", err)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("config file is valid: "+path))
	return nil
}
