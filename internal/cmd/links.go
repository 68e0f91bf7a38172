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

// linksOptions holds the flags for the links command.
type linksOptions struct {
	output  cmdutil.OutputFlags
	variant string
}

// NewLinksCmd creates the links command.
func NewLinksCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &linksOptions{}

	c := &cobra.Command{
		Use:   "links [file]",
		Short: "Print Obtainium deep links",
		Long: `Links prints the "Add to Obtainium" link of every app. Opening a link on a
device with Obtainium installed imports the app with its settings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runLinks(c, args, cfg, opts)
		},
	}

	opts.output.AddTo(c)
	c.Flags().StringVar(&opts.variant, "variant", "", "Only apps in this variant: standard, dual-screen, table")

	return c
}

func runLinks(c *cobra.Command, args []string, cfg *cmdtypes.GlobalConfig, opts *linksOptions) error {
	format, err := opts.output.Parse()
	if err != nil {
		return usageError(err)
	}

	doc, err := cmdutil.LoadDocument(sourcePath(args, cfg))
	if err != nil {
		return err
	}

	apps := doc.Apps
	if opts.variant != "" {
		v, err := catalog.ParseVariant(opts.variant)
		if err != nil {
			return usageError(err)
		}
		apps = catalog.Select(apps, v)
	}

	links, err := export.Links(apps, cfg.Config.RedirectURL)
	if err != nil {
		return err
	}

	if format != output.FormatText {
		return cmdutil.WriteStructured(c.OutOrStdout(), links, format)
	}
	for _, l := range links {
		fmt.Fprintf(c.OutOrStdout(), "%s\n  %s\n", output.StyleNoun.Render(l.Name), l.URL)
	}
	return nil
}
