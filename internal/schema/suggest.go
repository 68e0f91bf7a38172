package schema

import (
	"strings"

	"github.com/agext/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from the key it suggests.
const maxSuggestDistance = 3

// SuggestMetaKey returns the recognized meta key closest to name, if any is
// within a small edit distance.
func SuggestMetaKey(name string) (string, bool) {
	return suggest(name, MetaKeyNames())
}

// SuggestField returns the recognized top-level field closest to name.
func SuggestField(name string) (string, bool) {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return suggest(name, names)
}

func suggest(name string, candidates []string) (string, bool) {
	best := ""
	bestDist := maxSuggestDistance + 1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		d := levenshtein.Distance(lower, strings.ToLower(c), nil)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}
