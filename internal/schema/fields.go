package schema

import (
	"encoding/json"
	"slices"
)

// Top-level field names of an application entry.
const (
	FieldID                 = "id"
	FieldURL                = "url"
	FieldAuthor             = "author"
	FieldName               = "name"
	FieldPreferredApkIndex  = "preferredApkIndex"
	FieldAdditionalSettings = "additionalSettings"
	FieldCategories         = "categories"
	FieldAllowIDChange      = "allowIdChange"
	FieldOverrideSource     = "overrideSource"
	FieldMeta               = "meta"
)

// FieldSpec describes one recognized top-level field.
type FieldSpec struct {
	// Name is the JSON key.
	Name string

	// Kinds lists the accepted JSON kinds.
	Kinds []Kind

	// Required fields must be present on every entry.
	Required bool

	// Default is backfilled by normalization when the field is absent.
	// nil means the field is never backfilled.
	Default json.RawMessage
}

// Accepts reports whether a value of kind k is acceptable for the field.
func (f FieldSpec) Accepts(k Kind) bool {
	return slices.Contains(f.Kinds, k)
}

// KindNames returns the accepted kinds as a human readable list.
func (f FieldSpec) KindNames() string {
	return kindsString(f.Kinds)
}

// fields is declared in canonical output order.
var fields = []FieldSpec{
	{Name: FieldID, Kinds: []Kind{KindString}, Required: true},
	{Name: FieldURL, Kinds: []Kind{KindString}, Required: true},
	{Name: FieldAuthor, Kinds: []Kind{KindString}, Required: true},
	{Name: FieldName, Kinds: []Kind{KindString}, Required: true},
	{Name: FieldPreferredApkIndex, Kinds: []Kind{KindNumber}},
	{Name: FieldAdditionalSettings, Kinds: []Kind{KindString, KindObject}},
	{Name: FieldCategories, Kinds: []Kind{KindArray}},
	{Name: FieldAllowIDChange, Kinds: []Kind{KindBool}, Default: json.RawMessage(`false`)},
	{Name: FieldOverrideSource, Kinds: []Kind{KindString}},
	{Name: FieldMeta, Kinds: []Kind{KindObject}},
}

// Fields returns the recognized top-level fields in canonical order.
func Fields() []FieldSpec {
	return slices.Clone(fields)
}

// LookupField returns the spec for a top-level field.
func LookupField(name string) (FieldSpec, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// IsRequired reports whether name is a required top-level field.
func IsRequired(name string) bool {
	f, ok := LookupField(name)
	return ok && f.Required
}

// RequiredFields returns the required field names in canonical order.
func RequiredFields() []string {
	var names []string
	for _, f := range fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// FieldRank returns the canonical position of a top-level field.
func FieldRank(name string) (int, bool) {
	for i, f := range fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}
