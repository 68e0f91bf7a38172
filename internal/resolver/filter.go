package resolver

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

// apkExtensions are the asset suffixes treated as installable.
var apkExtensions = []string{".apk", ".xapk"}

func isAPK(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range apkExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// search reports whether re matches anywhere in s. Match timeouts count as
// no match.
func search(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// filterByPattern keeps the items matching pattern. An empty pattern keeps
// everything.
func filterByPattern(items []string, pattern string) ([]string, error) {
	if pattern == "" {
		return items, nil
	}
	re, err := schema.CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, item := range items {
		if search(re, item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// applyAPKFilter applies apkFilterRegEx, inverted when invertAPKFilter is set.
func applyAPKFilter(urls []string, s Settings) ([]string, error) {
	pattern := s.String("apkFilterRegEx")
	if pattern == "" || len(urls) == 0 {
		return urls, nil
	}
	re, err := schema.CompilePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("apkFilterRegEx: %w", err)
	}
	invert := s.Bool("invertAPKFilter", false)
	var out []string
	for _, u := range urls {
		if search(re, u) != invert {
			out = append(out, u)
		}
	}
	return out, nil
}

// sortLinks orders links the way the app does before taking the last one.
func sortLinks(links []string, step Settings) []string {
	if step.Bool("skipSort", false) {
		return links
	}
	out := append([]string(nil), links...)
	key := func(u string) string { return u }
	if step.Bool("sortByLastLinkSegment", false) {
		key = func(u string) string { return u[strings.LastIndex(u, "/")+1:] }
	}
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	if step.Bool("reverseSort", false) {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// extractVersion applies versionExtractionRegEx to raw. matchGroupToUse
// selects a group by number, or is a template with $N or \N references.
// Without it the first group is used when the pattern has one.
func extractVersion(raw string, s Settings) (string, string) {
	pattern := s.String("versionExtractionRegEx")
	if pattern == "" || raw == "" {
		return raw, ""
	}
	re, err := schema.CompilePattern(pattern)
	if err != nil {
		return raw, fmt.Sprintf("versionExtractionRegEx error: %v", err)
	}
	m, err := re.FindStringMatch(raw)
	if err != nil {
		return raw, fmt.Sprintf("versionExtractionRegEx error: %v", err)
	}
	if m == nil {
		return raw, ""
	}

	group := strings.TrimSpace(s.String("matchGroupToUse"))
	switch {
	case group != "":
		return expandGroups(m, group), ""
	case m.GroupCount() > 1:
		return m.GroupByNumber(1).String(), ""
	default:
		return m.String(), ""
	}
}

func expandGroups(m *regexp2.Match, template string) string {
	if n, err := strconv.Atoi(template); err == nil {
		if g := m.GroupByNumber(n); g != nil {
			return g.String()
		}
		return ""
	}

	var b strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		if (c == '$' || c == '\\') && i+1 < len(template) && isDigit(template[i+1]) {
			j := i + 1
			for j < len(template) && isDigit(template[j]) {
				j++
			}
			n, _ := strconv.Atoi(template[i+1 : j])
			if g := m.GroupByNumber(n); g != nil {
				b.WriteString(g.String())
			}
			i = j - 1
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// filterContext renders active filters for failure messages.
func filterContext(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			fmt.Fprintf(&b, ", %s=%s", pairs[i], pairs[i+1])
		}
	}
	return b.String()
}
