package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/obtainium-emulation-pack/oep/internal/cmdtypes"
	"github.com/obtainium-emulation-pack/oep/internal/cmdutil"
	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/normalize"
	"github.com/obtainium-emulation-pack/oep/internal/output"
)

// normalizeOptions holds the flags for the normalize command.
type normalizeOptions struct {
	check  bool
	stdout bool
	force  bool
}

// NewNormalizeCmd creates the normalize command.
func NewNormalizeCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &normalizeOptions{}

	c := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Rewrite the applications document in canonical form",
		Long: `Normalize orders every app's fields canonically, creates and backfills
meta with defaults and writes the document back with two-space indentation.
Values are never changed, and normalizing twice is a no-op.

The document is only written when it validates without errors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runNormalize(c, args, cfg, opts)
		},
	}

	c.Flags().BoolVar(&opts.check, "check", false, "Report whether the file would change without writing it")
	c.Flags().BoolVar(&opts.stdout, "stdout", false, "Print the normalized document instead of writing it")
	c.Flags().BoolVar(&opts.force, "force", false, "Write even when validation reports errors")
	c.MarkFlagsMutuallyExclusive("check", "stdout")

	return c
}

func runNormalize(c *cobra.Command, args []string, cfg *cmdtypes.GlobalConfig, opts *normalizeOptions) error {
	path := sourcePath(args, cfg)
	doc, err := cmdutil.LoadDocument(path)
	if err != nil {
		return err
	}

	if !opts.force {
		if _, err := cmdutil.RequireValid(doc, path); err != nil {
			return err
		}
	}

	normalized, stats := normalize.Normalize(doc)
	if opts.stdout {
		_, err := normalized.WriteTo(c.OutOrStdout())
		return err
	}

	data, err := normalized.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	changed := !bytes.Equal(original, data)

	if opts.check {
		if changed {
			fmt.Fprintln(c.OutOrStdout(), output.FormatCross(
				fmt.Sprintf("%s is not normalized (%s)", path, describeChanges(stats, "would change"))))
			return &oerrors.ExitError{
				Code:    oerrors.ExitValidationError,
				Err:     fmt.Errorf("%s is not normalized", path),
				Printed: true,
			}
		}
		fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(path+" is normalized"))
		return nil
	}

	if !changed {
		fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(path+" already normalized"))
		return nil
	}
	if err := cmdutil.WriteFile(path, data); err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(
		fmt.Sprintf("normalized %s (%s)", path, describeChanges(stats, "changed"))))
	return nil
}

// describeChanges counts the rewritten apps. A file whose apps are all in
// canonical form can still differ in whitespace or indentation.
func describeChanges(stats normalize.Stats, verb string) string {
	if stats.Changed == 0 {
		return "formatting differs, no app content " + verb
	}
	return fmt.Sprintf("%d of %d apps %s", stats.Changed, stats.Entries, verb)
}
