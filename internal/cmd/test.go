package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/cmdtypes"
	"github.com/obtainium-emulation-pack/oep/internal/cmdutil"
	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/output"
	"github.com/obtainium-emulation-pack/oep/internal/resolver"
	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

// testOptions holds the flags for the test command.
type testOptions struct {
	id          string
	json        bool
	output      cmdutil.OutputFlags
	githubToken string
}

// NewTestCmd creates the test command.
func NewTestCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &testOptions{}

	c := &cobra.Command{
		Use:   "test [name]",
		Short: "Check that apps resolve to downloadable APKs",
		Long: `Test resolves each app the way Obtainium would: GitHub and Codeberg apps
through their release APIs, HTML and DirectAPKLink apps by scraping links.
Other sources are skipped with a warning.

Filter by exact --id or by a case-insensitive name substring. GitHub requests
use GITHUB_TOKEN (from the environment or .env) when set. Any failure exits
with code 3.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runTest(c, args, cfg, opts)
		},
	}

	c.Flags().StringVar(&opts.id, "id", "", "Only test the app with this id")
	c.Flags().BoolVar(&opts.json, "json", false, "Print results as JSON (same as --output json)")
	c.Flags().StringVar(&opts.githubToken, "github-token", "", "GitHub API token (env: GITHUB_TOKEN)")
	opts.output.AddTo(c)

	return c
}

func runTest(c *cobra.Command, args []string, cfg *cmdtypes.GlobalConfig, opts *testOptions) error {
	if opts.json {
		opts.output.Format = string(output.FormatJSON)
	}
	format, err := opts.output.Parse()
	if err != nil {
		return usageError(err)
	}

	doc, err := cmdutil.LoadDocument(cfg.Config.Source)
	if err != nil {
		return err
	}

	filter := resolver.Filter{ID: opts.id}
	if len(args) > 0 {
		filter.Name = args[0]
	}
	apps := filter.Apply(doc.Apps)
	if len(apps) == 0 {
		return oerrors.NewExitError(oerrors.NewNotFoundError(
			"no apps match the filter", cfg.Config.Source, "check --id or the name argument"),
			oerrors.ExitNotFound)
	}

	token := cfg.Config.Test.GitHubToken
	if opts.githubToken != "" {
		token = opts.githubToken
	}
	if resolver.NeedsGitHubToken(apps, token) {
		output.Warn("no GitHub token set, API requests are limited to 60 per hour",
			"github_apps", resolver.CountSource(apps, schema.SourceGitHub),
			"hint", "set GITHUB_TOKEN or add it to .env")
	}

	tester := resolver.New(resolver.Options{
		GitHubToken: token,
		MaxReleases: cfg.Config.Test.MaxReleases,
		Timeout:     cfg.Config.Test.Timeout,
	})

	ctx := c.Context()
	var results []resolver.Result
	if format == output.FormatText {
		results = testInteractive(ctx, c, tester, apps, cfg.Verbose)
	} else {
		results = tester.TestAll(ctx, apps, nil)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	summary := resolver.Summarize(results)
	if format == output.FormatText {
		cmdutil.WriteSummary(c.OutOrStdout(), summary)
	} else {
		run := resolver.Run{Results: results, Summary: summary}
		if err := cmdutil.WriteStructured(c.OutOrStdout(), run, format); err != nil {
			return err
		}
	}

	if summary.Failed > 0 {
		var failed []string
		for _, r := range results {
			if !r.Passed {
				failed = append(failed, r.AppName)
			}
		}
		return oerrors.NewExitError(oerrors.NewConnectivityError(
			fmt.Sprintf("%d of %d app(s) failed to resolve", summary.Failed, summary.Total),
			failed, "rerun with --verbose for request details"),
			oerrors.ExitConnectivityError)
	}
	return nil
}

// testInteractive tests apps one at a time behind a spinner and prints each
// result as it arrives.
func testInteractive(ctx context.Context, c *cobra.Command, tester *resolver.Tester, apps []catalog.Entry, verbose bool) []resolver.Result {
	progress := output.NewProgress(len(apps))
	results := make([]resolver.Result, 0, len(apps))
	for _, e := range apps {
		var r resolver.Result
		if err := progress.Run(ctx, e.Name(), func() { r = tester.Test(ctx, e) }); err != nil {
			output.Debug("test run stopped", "error", err)
			break
		}
		results = append(results, r)
		cmdutil.WriteResult(c.OutOrStdout(), r, verbose)
	}
	return results
}
