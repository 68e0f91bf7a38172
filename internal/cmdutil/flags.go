// Package cmdutil provides shared command utilities: flag groups, document
// loading, and report rendering.
package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/output"
)

// OutputFlags holds the --output flag of report-producing commands
// (validate, test).
type OutputFlags struct {
	Format string
}

// AddTo registers the output flag on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", string(output.FormatText),
		fmt.Sprintf("Output format: %s", strings.Join(output.ValidFormats(), ", ")))
}

// Parse returns the selected format, or an error for unknown values.
func (f *OutputFlags) Parse() (output.OutputFormat, error) {
	format := output.ParseOutputFormat(f.Format)
	if format == output.FormatText && !strings.EqualFold(f.Format, string(output.FormatText)) {
		return "", fmt.Errorf("invalid output format %q (valid: %s)",
			f.Format, strings.Join(output.ValidFormats(), ", "))
	}
	return format, nil
}

// VariantFlags holds the --variant and --all flags of export.
type VariantFlags struct {
	Variant string
	All     bool
}

// AddTo registers the variant flags on the given cobra command.
func (f *VariantFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Variant, "variant", string(catalog.VariantStandard),
		"Release variant: standard, dual-screen")
	cmd.Flags().BoolVar(&f.All, "all", false,
		"Export every release variant to its configured file")
}

// Variants returns the variants selected by the flags.
func (f *VariantFlags) Variants() ([]catalog.Variant, error) {
	if f.All {
		return catalog.Releases, nil
	}
	v, err := catalog.ParseVariant(f.Variant)
	if err != nil {
		return nil, err
	}
	if v == catalog.VariantTable {
		return nil, fmt.Errorf("%s is not a release variant (use the table command)", v)
	}
	return []catalog.Variant{v}, nil
}
