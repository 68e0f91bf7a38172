package catalog

import (
	"fmt"

	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

// Variant names a downstream artifact an entry may be selected into.
type Variant string

const (
	VariantStandard   Variant = "standard"
	VariantDualScreen Variant = "dual-screen"
	VariantTable      Variant = "table"
)

// Releases are the variants that produce release documents.
var Releases = []Variant{VariantStandard, VariantDualScreen}

func (v Variant) String() string {
	return string(v)
}

// ParseVariant converts a name to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantStandard, VariantDualScreen, VariantTable:
		return Variant(s), nil
	}
	return "", fmt.Errorf("unknown variant %q (valid: %s, %s, %s)",
		s, VariantStandard, VariantDualScreen, VariantTable)
}

// Includes reports whether the entry belongs in variant v. The table shows
// every entry not excluded from it. excludeFromExport removes an entry from
// both release documents regardless of its per-variant flag.
func Includes(e Entry, v Variant) bool {
	switch v {
	case VariantTable:
		return !e.MetaBool(schema.MetaExcludeFromTable)
	case VariantStandard:
		if e.MetaBool(schema.MetaExcludeFromExport) {
			return false
		}
		return e.MetaBool(schema.MetaIncludeInStandard)
	case VariantDualScreen:
		if e.MetaBool(schema.MetaExcludeFromExport) {
			return false
		}
		return e.MetaBool(schema.MetaIncludeInDualScreen)
	}
	return false
}

// Select returns the entries of apps included in v, in document order.
func Select(apps []Entry, v Variant) []Entry {
	var out []Entry
	for _, e := range apps {
		if e.IsObject() && Includes(e, v) {
			out = append(out, e)
		}
	}
	return out
}

// Variants returns the release variants e is included in.
func Variants(e Entry) []Variant {
	var out []Variant
	for _, v := range Releases {
		if Includes(e, v) {
			out = append(out, v)
		}
	}
	return out
}
