package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obtainium-emulation-pack/oep/internal/changes"
	"github.com/obtainium-emulation-pack/oep/internal/cmdtypes"
	"github.com/obtainium-emulation-pack/oep/internal/cmdutil"
	"github.com/obtainium-emulation-pack/oep/internal/output"
)

// NewChangesCmd creates the changes command.
func NewChangesCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var markdown bool

	c := &cobra.Command{
		Use:   "changes OLD [NEW]",
		Short: "Compare two applications documents",
		Long: `Changes lists the apps added, removed and changed between two documents,
matched by id. NEW defaults to the configured source. Meta flags and the
formatting of additionalSettings are ignored, so OLD may be a previous
release file.

With --markdown the result is printed as release notes.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			newPath := cfg.Config.Source
			if len(args) == 2 {
				newPath = args[1]
			}
			return runChanges(c, args[0], newPath, cfg, markdown)
		},
	}

	c.Flags().BoolVar(&markdown, "markdown", false, "Print release notes markdown")

	return c
}

func runChanges(c *cobra.Command, oldPath, newPath string, cfg *cmdtypes.GlobalConfig, markdown bool) error {
	oldDoc, err := cmdutil.LoadDocument(oldPath)
	if err != nil {
		return err
	}
	newDoc, err := cmdutil.LoadDocument(newPath)
	if err != nil {
		return err
	}

	set, err := changes.Compare(oldDoc, newDoc)
	if err != nil {
		return err
	}

	w := c.OutOrStdout()
	if markdown {
		notes, err := changes.ReleaseNotes(set, cfg.Config.RedirectURL)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, notes)
		return err
	}

	if set.Empty() {
		fmt.Fprintln(w, output.FormatCheckmark("no app changes"))
		return nil
	}

	for _, e := range set.Added {
		fmt.Fprintf(w, "%s %s %s\n", output.StatusStyle(output.StatusPass).Render("+"),
			output.StyleNoun.Render(e.DisplayName()), output.StyleDim.Render(e.ID()))
	}
	for _, e := range set.Removed {
		fmt.Fprintf(w, "%s %s %s\n", output.StatusStyle(output.StatusFail).Render("-"),
			output.StyleNoun.Render(e.DisplayName()), output.StyleDim.Render(e.ID()))
	}
	useColor := output.IsTTY()
	for _, ch := range set.Changed {
		fmt.Fprintf(w, "%s %s %s\n", output.StatusStyle(output.StatusWarn).Render("~"),
			output.StyleNoun.Render(ch.New.DisplayName()), output.StyleDim.Render(ch.New.ID()))
		diff, err := changes.Diff(ch, useColor)
		if err != nil {
			return err
		}
		if diff != "" {
			fmt.Fprintln(w, cmdutil.Indent(diff, "    "))
		}
	}

	fmt.Fprintln(w, output.StyleSummary.Render(fmt.Sprintf("%d added, %d removed, %d changed",
		len(set.Added), len(set.Removed), len(set.Changed))))
	return nil
}
