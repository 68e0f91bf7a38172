package schema

import (
	"encoding/json"
	"slices"
)

// Recognized meta keys.
const (
	MetaExcludeFromExport   = "excludeFromExport"
	MetaExcludeFromTable    = "excludeFromTable"
	MetaIncludeInStandard   = "includeInStandard"
	MetaIncludeInDualScreen = "includeInDualScreen"
	MetaNameOverride        = "nameOverride"
	MetaURLOverride         = "urlOverride"
)

// MetaKey describes one recognized meta key and its default.
type MetaKey struct {
	Name    string
	Kinds   []Kind
	Default json.RawMessage
}

// Accepts reports whether a value of kind k is acceptable for the key.
func (m MetaKey) Accepts(k Kind) bool {
	return slices.Contains(m.Kinds, k)
}

// KindNames returns the accepted kinds as a human readable list.
func (m MetaKey) KindNames() string {
	return kindsString(m.Kinds)
}

// metaKeys is declared in canonical output order.
var metaKeys = []MetaKey{
	{Name: MetaExcludeFromExport, Kinds: []Kind{KindBool}, Default: json.RawMessage(`false`)},
	{Name: MetaExcludeFromTable, Kinds: []Kind{KindBool}, Default: json.RawMessage(`false`)},
	{Name: MetaIncludeInStandard, Kinds: []Kind{KindBool}, Default: json.RawMessage(`true`)},
	{Name: MetaIncludeInDualScreen, Kinds: []Kind{KindBool}, Default: json.RawMessage(`true`)},
	{Name: MetaNameOverride, Kinds: []Kind{KindString, KindNull}, Default: json.RawMessage(`null`)},
	{Name: MetaURLOverride, Kinds: []Kind{KindString, KindNull}, Default: json.RawMessage(`null`)},
}

// MetaKeys returns the recognized meta keys in canonical order.
func MetaKeys() []MetaKey {
	return slices.Clone(metaKeys)
}

// MetaKeyNames returns the recognized meta key names in canonical order.
func MetaKeyNames() []string {
	names := make([]string, len(metaKeys))
	for i, m := range metaKeys {
		names[i] = m.Name
	}
	return names
}

// LookupMetaKey returns the spec for a meta key.
func LookupMetaKey(name string) (MetaKey, bool) {
	for _, m := range metaKeys {
		if m.Name == name {
			return m, true
		}
	}
	return MetaKey{}, false
}

// IsMetaKey reports whether name is a recognized meta key (exact match).
func IsMetaKey(name string) bool {
	_, ok := LookupMetaKey(name)
	return ok
}

// MetaDefault returns the default value for a meta key.
func MetaDefault(name string) (json.RawMessage, bool) {
	m, ok := LookupMetaKey(name)
	if !ok {
		return nil, false
	}
	return m.Default, true
}

// MetaBoolDefault returns the default of a boolean meta key, false for
// anything else.
func MetaBoolDefault(name string) bool {
	raw, ok := MetaDefault(name)
	return ok && string(raw) == "true"
}
