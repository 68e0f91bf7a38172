package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obtainium-emulation-pack/oep/internal/cmdtypes"
	"github.com/obtainium-emulation-pack/oep/internal/cmdutil"
	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/validate"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var outputFlags cmdutil.OutputFlags

	c := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate the applications document",
		Long: `Validate checks every app for required fields, field kinds, meta keys,
regex settings and duplicate ids within each release variant.

Errors fail the command with exit code 2. Warnings are advisory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runValidate(c, args, cfg, &outputFlags)
		},
	}

	outputFlags.AddTo(c)

	return c
}

func runValidate(c *cobra.Command, args []string, cfg *cmdtypes.GlobalConfig, outputFlags *cmdutil.OutputFlags) error {
	format, err := outputFlags.Parse()
	if err != nil {
		return usageError(err)
	}

	path := sourcePath(args, cfg)
	doc, err := cmdutil.LoadDocument(path)
	if err != nil {
		return err
	}

	report, err := validate.Validate(doc)
	if err != nil {
		return err
	}

	if err := cmdutil.WriteReport(c.OutOrStdout(), report, format); err != nil {
		return err
	}

	if err := report.Err(path); err != nil {
		return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
	}
	return nil
}
