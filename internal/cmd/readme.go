package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obtainium-emulation-pack/oep/internal/cmdtypes"
	"github.com/obtainium-emulation-pack/oep/internal/export"
)

// NewReadmeCmd creates the readme command.
func NewReadmeCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &markdownOptions{}

	c := &cobra.Command{
		Use:   "readme [section...]",
		Short: "Stitch the README from markdown sections",
		Long: `Readme joins markdown section files in order with one blank line between
them. Sections default to readme.sections from the config; run the table
command first so the generated table is current.`,
		RunE: func(c *cobra.Command, args []string) error {
			sections := args
			if len(sections) == 0 {
				sections = cfg.Config.Readme.Sections
			}

			markdown, err := export.StitchFiles(sections)
			if err != nil {
				return err
			}

			target := opts.output
			if target == "" {
				target = cfg.Config.Readme.Output
			}
			return opts.emit(c, markdown, target, "README")
		},
	}

	opts.addTo(c, "README")

	return c
}
