package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

// Entry is one application record. An element of the apps list that is not
// an object is kept verbatim so validation can report it.
type Entry struct {
	Object

	raw json.RawMessage
}

// NewEntry returns an entry with the given fields.
func NewEntry(fields ...Field) Entry {
	return Entry{Object: Object(fields)}
}

// IsObject reports whether the entry was decoded from a JSON object.
func (e Entry) IsObject() bool {
	return e.raw == nil
}

// Kind returns the JSON kind of the entry itself.
func (e Entry) Kind() schema.Kind {
	if e.IsObject() {
		return schema.KindObject
	}
	return schema.KindOf(e.raw)
}

// Clone deep-copies the entry.
func (e Entry) Clone() Entry {
	return Entry{Object: e.Object.Clone(), raw: bytes.Clone(e.raw)}
}

// MarshalJSON writes the entry compactly.
func (e Entry) MarshalJSON() ([]byte, error) {
	if !e.IsObject() {
		return e.raw, nil
	}
	return e.Object.MarshalJSON()
}

// StringValue returns the string stored under key, if the value is a string.
func (e Entry) StringValue(key string) (string, bool) {
	raw, ok := e.Get(key)
	if !ok || schema.KindOf(raw) != schema.KindString {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// ID returns the entry's package identifier.
func (e Entry) ID() string {
	s, _ := e.StringValue(schema.FieldID)
	return s
}

// Name returns the entry's canonical display name.
func (e Entry) Name() string {
	s, _ := e.StringValue(schema.FieldName)
	return s
}

// URL returns the entry's source URL.
func (e Entry) URL() string {
	s, _ := e.StringValue(schema.FieldURL)
	return s
}

// Source returns the source the entry resolves with.
func (e Entry) Source() string {
	override, _ := e.StringValue(schema.FieldOverrideSource)
	return schema.EffectiveSource(override, e.URL())
}

// Identifier names the entry in messages: name, else id, else its position.
func (e Entry) Identifier(index int) string {
	if name := e.Name(); name != "" {
		return name
	}
	if id := e.ID(); id != "" {
		return id
	}
	return fmt.Sprintf("app[%d]", index)
}

// Categories returns the string categories of the entry. Non-string items are
// skipped.
func (e Entry) Categories() []string {
	raw, ok := e.Get(schema.FieldCategories)
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// Meta returns the entry's meta block when it is an object.
func (e Entry) Meta() (Object, bool) {
	raw, ok := e.Get(schema.FieldMeta)
	if !ok || schema.KindOf(raw) != schema.KindObject {
		return nil, false
	}
	var meta Object
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, false
	}
	return meta, true
}

// MetaBool returns a boolean meta flag. A missing meta block, a missing key or
// a value of the wrong kind all yield the registry default.
func (e Entry) MetaBool(key string) bool {
	def := schema.MetaBoolDefault(key)
	meta, ok := e.Meta()
	if !ok {
		return def
	}
	raw, ok := meta.Get(key)
	if !ok {
		return def
	}
	switch string(raw) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// MetaString returns a string meta value, "" when unset or null.
func (e Entry) MetaString(key string) string {
	meta, ok := e.Meta()
	if !ok {
		return ""
	}
	raw, ok := meta.Get(key)
	if !ok || schema.KindOf(raw) != schema.KindString {
		return ""
	}
	var s string
	_ = json.Unmarshal(raw, &s)
	return s
}

// DisplayName is the name shown in documentation; nameOverride wins when set.
func (e Entry) DisplayName() string {
	if s := e.MetaString(schema.MetaNameOverride); s != "" {
		return s
	}
	return e.Name()
}

// HomepageURL is the link shown in documentation; urlOverride wins when set.
func (e Entry) HomepageURL() string {
	if s := e.MetaString(schema.MetaURLOverride); s != "" {
		return s
	}
	return e.URL()
}

// WithoutMeta returns a copy of the entry with the meta block removed.
func (e Entry) WithoutMeta() Entry {
	out := e.Clone()
	out.Delete(schema.FieldMeta)
	return out
}
