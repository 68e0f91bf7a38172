package resolver

import (
	"strings"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

// Summary totals a test run.
type Summary struct {
	Total      int   `json:"total" yaml:"total"`
	Passed     int   `json:"passed" yaml:"passed"`
	Failed     int   `json:"failed" yaml:"failed"`
	Warned     int   `json:"warned" yaml:"warned"`
	DurationMS int64 `json:"duration_ms" yaml:"duration_ms"`
}

// Run is the machine-readable output of a test run.
type Run struct {
	Results []Result `json:"results" yaml:"results"`
	Summary Summary  `json:"summary" yaml:"summary"`
}

// Summarize totals results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		if len(r.Warnings) > 0 {
			s.Warned++
		}
		s.DurationMS += r.DurationMS
	}
	return s
}

// Filter selects which entries to test.
type Filter struct {
	// ID selects the entries with exactly this id. It wins over Name.
	ID string

	// Name selects entries whose name contains it, case-insensitively.
	Name string
}

// Apply returns the object entries of apps matching the filter.
func (f Filter) Apply(apps []catalog.Entry) []catalog.Entry {
	name := strings.ToLower(f.Name)
	var out []catalog.Entry
	for _, e := range apps {
		if !e.IsObject() {
			continue
		}
		switch {
		case f.ID != "":
			if e.ID() != f.ID {
				continue
			}
		case name != "":
			if !strings.Contains(strings.ToLower(e.Name()), name) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// CountSource returns how many entries resolve via source.
func CountSource(apps []catalog.Entry, source string) int {
	n := 0
	for _, e := range apps {
		if e.Source() == source {
			n++
		}
	}
	return n
}

// NeedsGitHubToken reports whether the run would hit the GitHub API without
// a token.
func NeedsGitHubToken(apps []catalog.Entry, token string) bool {
	return token == "" && CountSource(apps, schema.SourceGitHub) > 0
}
