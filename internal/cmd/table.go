package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obtainium-emulation-pack/oep/internal/cmdtypes"
	"github.com/obtainium-emulation-pack/oep/internal/cmdutil"
	"github.com/obtainium-emulation-pack/oep/internal/export"
	"github.com/obtainium-emulation-pack/oep/internal/output"
)

// errNoOutput is returned when no output file is configured.
var errNoOutput = errors.New("set --output or configure a path")

// markdownOptions holds the flags shared by table and readme.
type markdownOptions struct {
	output  string
	preview bool
}

func (o *markdownOptions) addTo(c *cobra.Command, what string) {
	c.Flags().StringVarP(&o.output, "output", "o", "", fmt.Sprintf("Output file for the %s (- for stdout)", what))
	c.Flags().BoolVar(&o.preview, "preview", false, "Render the markdown in the terminal instead of writing it")
}

// emit previews, prints or writes markdown according to the options.
func (o *markdownOptions) emit(c *cobra.Command, markdown, target, what string) error {
	switch {
	case o.preview:
		rendered, err := output.RenderMarkdown(markdown, output.TerminalWidth(100))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(c.OutOrStdout(), rendered)
		return err
	case target == "-":
		_, err := fmt.Fprint(c.OutOrStdout(), markdown)
		return err
	case target == "":
		return usageError(fmt.Errorf("no output file for the %s: %w", what, errNoOutput))
	}

	if err := cmdutil.WriteFile(target, []byte(markdown)); err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf("wrote %s to %s", what, target)))
	return nil
}

// NewTableCmd creates the table command.
func NewTableCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &markdownOptions{}

	c := &cobra.Command{
		Use:   "table [file]",
		Short: "Generate the markdown application table",
		Long: `Table renders one markdown table per category listing every app that is
not excluded from the table, with its inclusion in each release variant and
an "Add to Obtainium" link.

The table is written to tableFile from the config unless --output is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := sourcePath(args, cfg)
			doc, err := cmdutil.LoadDocument(path)
			if err != nil {
				return err
			}
			if _, err := cmdutil.RequireValid(doc, path); err != nil {
				return err
			}

			markdown, err := export.Table(doc.Apps, cfg.Config.RedirectURL)
			if err != nil {
				return err
			}

			target := opts.output
			if target == "" {
				target = cfg.Config.TableFile
			}
			return opts.emit(c, markdown, target, "table")
		},
	}

	opts.addTo(c, "table")

	return c
}
