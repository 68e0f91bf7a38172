// Package normalize rewrites application entries into canonical form.
//
// Normalization reorders keys and backfills defaults. It never changes an
// existing value, and normalizing an already normalized document is a no-op.
package normalize

import (
	"encoding/json"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/output"
	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

// Stats summarizes a normalization run.
type Stats struct {
	// Entries is the number of entries in the document.
	Entries int

	// Changed is the number of entries whose key order or contents changed.
	Changed int
}

// Normalize returns a normalized copy of doc. The input is not modified.
func Normalize(doc *catalog.Document) (*catalog.Document, Stats) {
	stats := Stats{Entries: len(doc.Apps)}
	apps := make([]catalog.Entry, len(doc.Apps))
	for i, e := range doc.Apps {
		out := Entry(e)
		if !out.Object.Equal(e.Object) {
			stats.Changed++
			output.Debug("normalized", "app", e.Identifier(i))
		}
		apps[i] = out
	}
	return doc.WithApps(apps), stats
}

// Entry returns the canonical form of a single entry. Entries that are not
// objects are returned unchanged.
func Entry(e catalog.Entry) catalog.Entry {
	if !e.IsObject() {
		return e.Clone()
	}

	src := e.Object.Clone()
	for _, f := range schema.Fields() {
		if f.Default != nil && !src.Has(f.Name) {
			src.Set(f.Name, f.Default)
		}
	}

	meta, ok := src.Get(schema.FieldMeta)
	switch {
	case !ok:
		src.Set(schema.FieldMeta, metaBlock(nil))
	case schema.KindOf(meta) == schema.KindObject:
		var obj catalog.Object
		if err := json.Unmarshal(meta, &obj); err == nil {
			src.Set(schema.FieldMeta, metaBlock(obj))
		}
	}

	return catalog.Entry{Object: order(src)}
}

// metaBlock fills in every recognized meta key, keeping existing values.
func metaBlock(meta catalog.Object) json.RawMessage {
	out := make(catalog.Object, 0, len(meta)+len(schema.MetaKeys()))
	for _, key := range schema.MetaKeys() {
		if v, ok := meta.Get(key.Name); ok {
			out = append(out, catalog.Field{Key: key.Name, Value: v})
			continue
		}
		out = append(out, catalog.Field{Key: key.Name, Value: key.Default})
	}
	for _, f := range meta {
		if !schema.IsMetaKey(f.Key) {
			out = append(out, f)
		}
	}
	raw, _ := out.MarshalJSON()
	return raw
}

// order puts known fields first in canonical order, then unknown keys in their original
// relative order.
func order(obj catalog.Object) catalog.Object {
	known := make([]*catalog.Field, len(schema.Fields()))
	var unknown catalog.Object
	for i := range obj {
		if r, ok := schema.FieldRank(obj[i].Key); ok {
			known[r] = &obj[i]
			continue
		}
		unknown = append(unknown, obj[i])
	}

	out := make(catalog.Object, 0, len(obj))
	for _, f := range known {
		if f != nil {
			out = append(out, *f)
		}
	}
	return append(out, unknown...)
}
