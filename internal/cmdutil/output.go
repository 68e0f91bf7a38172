package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/obtainium-emulation-pack/oep/internal/output"
	"github.com/obtainium-emulation-pack/oep/internal/resolver"
	"github.com/obtainium-emulation-pack/oep/internal/validate"
)

// WriteStructured encodes v as indented JSON or YAML.
func WriteStructured(w io.Writer, v any, format output.OutputFormat) error {
	switch format {
	case output.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case output.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}

// reportView is the machine-readable shape of a validation report.
type reportView struct {
	Valid    bool               `json:"valid" yaml:"valid"`
	Checked  int                `json:"checked" yaml:"checked"`
	Errors   int                `json:"errors" yaml:"errors"`
	Warnings int                `json:"warnings" yaml:"warnings"`
	Findings []validate.Finding `json:"findings" yaml:"findings"`
}

// WriteReport renders a validation report in the given format.
func WriteReport(w io.Writer, r *validate.Report, format output.OutputFormat) error {
	if format != output.FormatText {
		findings := r.Findings
		if findings == nil {
			findings = []validate.Finding{}
		}
		return WriteStructured(w, reportView{
			Valid:    r.Valid(),
			Checked:  r.Checked,
			Errors:   len(r.Errors()),
			Warnings: len(r.Warnings()),
			Findings: findings,
		}, format)
	}

	tbl := output.NewTable("", "APP", "FIELD", "MESSAGE")
	for _, f := range r.Findings {
		tbl.Row(
			output.SeverityMarker(string(f.Severity)),
			f.Entry,
			f.Field,
			output.SeverityStyle(string(f.Severity)).Render(f.Message),
		)
	}
	if tbl.Len() > 0 {
		fmt.Fprintln(w, tbl.String())
	}

	summary := fmt.Sprintf("%d app(s) checked, %d error(s), %d warning(s)",
		r.Checked, len(r.Errors()), len(r.Warnings()))
	if r.Valid() {
		fmt.Fprintln(w, output.FormatCheckmark(summary))
	} else {
		fmt.Fprintln(w, output.FormatCross(summary))
	}
	return nil
}

// WriteResult prints one live test result as a status line. Warnings are
// listed below failing results, and below every result when verbose.
func WriteResult(w io.Writer, r resolver.Result, verbose bool) {
	status := output.StatusPass
	switch {
	case !r.Passed:
		status = output.StatusFail
	case len(r.Warnings) > 0:
		status = output.StatusWarn
	}

	line := fmt.Sprintf("%s %s %s",
		output.StatusStyle(status).Render(fmt.Sprintf("%-4s", status)),
		output.StyleNoun.Render(r.AppName),
		output.StyleDim.Render("("+r.Source+")"))
	if r.Passed && r.Version != "" {
		line += " " + r.Version
	}
	fmt.Fprintln(w, line)

	if r.Error != "" {
		fmt.Fprintln(w, "     "+output.SeverityStyle(output.SeverityError).Render(r.Error))
	}
	if verbose || !r.Passed {
		for _, warning := range r.Warnings {
			fmt.Fprintln(w, "     "+output.SeverityStyle(output.SeverityWarning).Render(warning))
		}
	}
	if verbose {
		for _, u := range r.APKURLs {
			fmt.Fprintln(w, "     "+output.StyleDim.Render(u))
		}
	}
}

// WriteSummary prints the totals table of a test run.
func WriteSummary(w io.Writer, s resolver.Summary) {
	tbl := output.NewTable("TOTAL", "PASSED", "FAILED", "WARNED", "TIME").AlignRight(0, 1, 2, 3, 4)
	tbl.Row(
		strconv.Itoa(s.Total),
		strconv.Itoa(s.Passed),
		strconv.Itoa(s.Failed),
		strconv.Itoa(s.Warned),
		fmt.Sprintf("%.1fs", float64(s.DurationMS)/1000),
	)
	fmt.Fprintln(w, tbl.String())
}

// Indent prefixes every non-empty line of s.
func Indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
