// Package changes compares two applications documents and reports the apps
// added, changed and removed between them.
package changes

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/export"
)

// Change is an app present in both documents with different content.
type Change struct {
	Old catalog.Entry
	New catalog.Entry
}

// Set is the result of comparing two documents. Each list is sorted by id.
type Set struct {
	Added   []catalog.Entry
	Changed []Change
	Removed []catalog.Entry
}

// Empty reports whether nothing changed.
func (s *Set) Empty() bool {
	return len(s.Added) == 0 && len(s.Changed) == 0 && len(s.Removed) == 0
}

// byID groups object entries by id in document order. An id may be shared
// by entries split across release variants.
func byID(doc *catalog.Document) map[string][]catalog.Entry {
	out := make(map[string][]catalog.Entry)
	for _, e := range doc.Apps {
		if e.IsObject() && e.ID() != "" {
			out[e.ID()] = append(out[e.ID()], e)
		}
	}
	return out
}

func sortedIDs(groups ...map[string][]catalog.Entry) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, m := range groups {
		for id := range m {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

func variantKey(e catalog.Entry) string {
	var names []string
	for _, v := range catalog.Variants(e) {
		names = append(names, v.String())
	}
	return strings.Join(names, ",")
}

// pair matches the entries sharing one id. Entries with the same release
// variants pair first, the rest pair by position. Leftovers are returned as
// added and removed.
func pair(olds, news []catalog.Entry) (pairs []Change, added, removed []catalog.Entry) {
	if len(olds) == 1 && len(news) == 1 {
		return []Change{{Old: olds[0], New: news[0]}}, nil, nil
	}

	used := make([]bool, len(news))
	var unmatched []catalog.Entry
	for _, o := range olds {
		key := variantKey(o)
		matched := false
		for j, n := range news {
			if !used[j] && variantKey(n) == key {
				used[j] = true
				pairs = append(pairs, Change{Old: o, New: n})
				matched = true
				break
			}
		}
		if !matched {
			unmatched = append(unmatched, o)
		}
	}

	j := 0
	for _, o := range unmatched {
		for j < len(news) && used[j] {
			j++
		}
		if j == len(news) {
			removed = append(removed, o)
			continue
		}
		used[j] = true
		pairs = append(pairs, Change{Old: o, New: news[j]})
	}
	for j, n := range news {
		if !used[j] {
			added = append(added, n)
		}
	}
	return pairs, added, removed
}

// Compare matches apps by id, and by release variants where an id is shared.
// Meta flags and the formatting of additionalSettings are ignored when
// deciding whether an app changed.
func Compare(oldDoc, newDoc *catalog.Document) (*Set, error) {
	oldApps, newApps := byID(oldDoc), byID(newDoc)
	set := &Set{}

	for _, id := range sortedIDs(oldApps, newApps) {
		pairs, added, removed := pair(oldApps[id], newApps[id])
		set.Added = append(set.Added, added...)
		set.Removed = append(set.Removed, removed...)
		for _, c := range pairs {
			a, err := c.Old.ComparableJSON()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", id, err)
			}
			b, err := c.New.ComparableJSON()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", id, err)
			}
			if !bytes.Equal(a, b) {
				set.Changed = append(set.Changed, c)
			}
		}
	}
	return set, nil
}

// Diff renders the field-level difference of a change as a dyff report.
func Diff(c Change, useColor bool) (string, error) {
	from, err := yamlInput("old", c.Old)
	if err != nil {
		return "", err
	}
	to, err := yamlInput("new", c.New)
	if err != nil {
		return "", err
	}

	report, err := dyff.CompareInputFiles(from, to)
	if err != nil {
		return "", fmt.Errorf("comparing apps: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	writer := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := writer.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func yamlInput(name string, e catalog.Entry) (ytbx.InputFile, error) {
	data, err := e.ComparableJSON()
	if err != nil {
		return ytbx.InputFile{}, err
	}
	y, err := yaml.JSONToYAML(data)
	if err != nil {
		return ytbx.InputFile{}, fmt.Errorf("converting %s app: %w", name, err)
	}
	docs, err := ytbx.LoadYAMLDocuments(y)
	if err != nil {
		return ytbx.InputFile{}, fmt.Errorf("parsing %s app: %w", name, err)
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

// ReleaseNotes renders the app sections of release notes: new apps grouped
// by category, updated apps in one table and removed apps as a list.
func ReleaseNotes(s *Set, redirectURL string) (string, error) {
	var lines []string

	if len(s.Added) > 0 {
		table, err := export.AppTable(s.Added, redirectURL, true)
		if err != nil {
			return "", err
		}
		lines = append(lines, "## New Apps\n", table, "")
	}

	if len(s.Changed) > 0 {
		updated := make([]catalog.Entry, len(s.Changed))
		for i, c := range s.Changed {
			updated[i] = c.New
		}
		table, err := export.AppTable(updated, redirectURL, false)
		if err != nil {
			return "", err
		}
		lines = append(lines, "## App Updates\n", table, "")
	}

	if len(s.Removed) > 0 {
		removed := append([]catalog.Entry(nil), s.Removed...)
		sort.SliceStable(removed, func(i, j int) bool {
			return strings.ToLower(removed[i].DisplayName()) < strings.ToLower(removed[j].DisplayName())
		})
		lines = append(lines, "## Removed Apps\n")
		for _, e := range removed {
			lines = append(lines, "- "+e.DisplayName())
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n"), nil
}
