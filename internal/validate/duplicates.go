package validate

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

type entryPair struct {
	first, second int
}

// checkDuplicates reports every pair of entries sharing an id inside a
// release variant. Empty ids are reported by the field checks and never
// collide. A pair colliding in several variants yields one finding
// naming all of them.
func checkDuplicates(r *Report, apps []catalog.Entry) {
	conflicts := make(map[entryPair][]catalog.Variant)

	for _, v := range catalog.Releases {
		byID := make(map[string][]int)
		for i, e := range apps {
			if !e.IsObject() {
				continue
			}
			id, ok := e.StringValue(schema.FieldID)
			if !ok || id == "" || !catalog.Includes(e, v) {
				continue
			}
			for _, prev := range byID[id] {
				p := entryPair{first: prev, second: i}
				conflicts[p] = append(conflicts[p], v)
			}
			byID[id] = append(byID[id], i)
		}
	}

	pairs := make([]entryPair, 0, len(conflicts))
	for p := range conflicts {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(a, b entryPair) int {
		return cmp.Or(cmp.Compare(a.second, b.second), cmp.Compare(a.first, b.first))
	})

	for _, p := range pairs {
		first, second := apps[p.first], apps[p.second]
		variants := make([]string, len(conflicts[p]))
		for i, v := range conflicts[p] {
			variants[i] = v.String()
		}
		r.add(SeverityError, second.Identifier(p.second), p.second, schema.FieldID,
			"duplicate id %q shared with %q (app[%d]) in %s",
			second.ID(), first.Identifier(p.first), p.first, joinVariants(variants))
	}
}

func joinVariants(variants []string) string {
	if len(variants) == 1 {
		return "the " + variants[0] + " release"
	}
	return fmt.Sprintf("the %s and %s releases", strings.Join(variants[:len(variants)-1], ", "), variants[len(variants)-1])
}
