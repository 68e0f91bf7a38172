package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/cmdtypes"
	"github.com/obtainium-emulation-pack/oep/internal/cmdutil"
	"github.com/obtainium-emulation-pack/oep/internal/export"
	"github.com/obtainium-emulation-pack/oep/internal/output"
)

// exportOptions holds the flags for the export command.
type exportOptions struct {
	variants cmdutil.VariantFlags
	output   string
}

// NewExportCmd creates the export command.
func NewExportCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &exportOptions{}

	c := &cobra.Command{
		Use:   "export [file]",
		Short: "Write minified release documents",
		Long: `Export writes the import file of a release variant: apps excluded from
the variant are dropped, meta is removed, additionalSettings becomes a
compact JSON string and the whole document is minified.

Without --output the file name comes from export.standard or
export.dualScreen in the config. Use --output - to print to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runExport(c, args, cfg, opts)
		},
	}

	opts.variants.AddTo(c)
	c.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (- for stdout)")
	c.MarkFlagsMutuallyExclusive("all", "output")

	return c
}

func runExport(c *cobra.Command, args []string, cfg *cmdtypes.GlobalConfig, opts *exportOptions) error {
	variants, err := opts.variants.Variants()
	if err != nil {
		return usageError(err)
	}

	path := sourcePath(args, cfg)
	doc, err := cmdutil.LoadDocument(path)
	if err != nil {
		return err
	}
	if _, err := cmdutil.RequireValid(doc, path); err != nil {
		return err
	}

	for _, v := range variants {
		data, n, err := export.Minify(doc, v)
		if err != nil {
			return fmt.Errorf("exporting %s: %w", v, err)
		}

		target := opts.output
		if target == "" {
			target = releaseFile(cfg, v)
		}
		if target == "-" {
			if _, err := fmt.Fprintln(c.OutOrStdout(), string(data)); err != nil {
				return err
			}
			continue
		}

		if err := cmdutil.WriteFile(target, data); err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(
			fmt.Sprintf("exported %d apps to %s (%s)", n, target, v)))
	}
	return nil
}

// releaseFile is the configured output file of a release variant.
func releaseFile(cfg *cmdtypes.GlobalConfig, v catalog.Variant) string {
	if v == catalog.VariantDualScreen {
		return cfg.Config.Export.DualScreen
	}
	return cfg.Config.Export.Standard
}
