package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/output"
)

// UncategorizedLabel groups entries without categories in release notes.
const UncategorizedLabel = "Other"

const tableHeader = "| Application Name | Add to Obtainium | Included in export json? | Included in DS json? |\n" +
	"|------------------|------------------|---------------------------|----------------------|"

// Row renders one table row for e.
func Row(e catalog.Entry, redirectURL string) (string, error) {
	link, err := ObtainiumLink(e, redirectURL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`| <a href="%s">%s</a> | <a href="%s">Add to Obtainium!</a> | %s | %s |`,
		e.HomepageURL(), e.DisplayName(), link,
		output.FormatInclusion(catalog.Includes(e, catalog.VariantStandard)),
		output.FormatInclusion(catalog.Includes(e, catalog.VariantDualScreen)),
	), nil
}

// sortByDisplayName orders entries by display name, case-insensitively.
func sortByDisplayName(apps []catalog.Entry) []catalog.Entry {
	out := append([]catalog.Entry(nil), apps...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName()) < strings.ToLower(out[j].DisplayName())
	})
	return out
}

// groupByCategory maps each category to its entries. An entry appears under
// every category it lists. When fallback is set, entries without categories
// are grouped under it.
func groupByCategory(apps []catalog.Entry, fallback string) (map[string][]catalog.Entry, []string) {
	groups := make(map[string][]catalog.Entry)
	for _, e := range apps {
		categories := e.Categories()
		if len(categories) == 0 && fallback != "" {
			categories = []string{fallback}
		}
		for _, c := range categories {
			groups[c] = append(groups[c], e)
		}
	}
	names := make([]string, 0, len(groups))
	for c := range groups {
		names = append(names, c)
	}
	sort.Strings(names)
	return groups, names
}

// Table renders the documentation table: one section per category, sorted,
// rows sorted by display name. Entries excluded from the table are skipped.
func Table(apps []catalog.Entry, redirectURL string) (string, error) {
	groups, names := groupByCategory(catalog.Select(apps, catalog.VariantTable), "")

	lines := []string{"## Applications\n"}
	for _, category := range names {
		lines = append(lines, fmt.Sprintf("### %s\n", category), tableHeader)
		for _, e := range sortByDisplayName(groups[category]) {
			row, err := Row(e, redirectURL)
			if err != nil {
				return "", fmt.Errorf("%s: %w", e.DisplayName(), err)
			}
			lines = append(lines, row)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n"), nil
}

// AppTable renders a table of apps for release notes. Grouped tables get a
// section per category, with uncategorized apps under UncategorizedLabel.
func AppTable(apps []catalog.Entry, redirectURL string, grouped bool) (string, error) {
	if len(apps) == 0 {
		return "", nil
	}

	rows := func(entries []catalog.Entry) ([]string, error) {
		var out []string
		for _, e := range sortByDisplayName(entries) {
			row, err := Row(e, redirectURL)
			if err != nil {
				return nil, err
			}
			out = append(out, row)
		}
		return out, nil
	}

	if !grouped {
		body, err := rows(apps)
		if err != nil {
			return "", err
		}
		return strings.Join(append([]string{tableHeader}, body...), "\n"), nil
	}

	groups, names := groupByCategory(apps, UncategorizedLabel)
	var lines []string
	for _, category := range names {
		body, err := rows(groups[category])
		if err != nil {
			return "", err
		}
		lines = append(lines, fmt.Sprintf("### %s\n", category), tableHeader)
		lines = append(lines, body...)
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n"), nil
}
