package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

// AppsKey is the top-level key holding the entry list.
const AppsKey = "apps"

// Document is the parsed applications file. Release-wide top-level keys are
// kept in their original order around the apps list.
type Document struct {
	top  Object
	Apps []Entry
}

// NewDocument returns a document holding only the given entries.
func NewDocument(apps []Entry) *Document {
	return &Document{top: Object{{Key: AppsKey}}, Apps: apps}
}

// Decode parses an applications document.
func Decode(data []byte) (*Document, error) {
	var top Object
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	rawApps, ok := top.Get(AppsKey)
	if !ok {
		return nil, fmt.Errorf("document has no %q key", AppsKey)
	}
	if schema.KindOf(rawApps) != schema.KindArray {
		return nil, fmt.Errorf("%q must be an array, got %s", AppsKey, schema.KindOf(rawApps))
	}

	apps, err := decodeEntries(rawApps)
	if err != nil {
		return nil, err
	}
	return &Document{top: top, Apps: apps}, nil
}

// ReadFile reads and parses the document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func decodeEntries(raw json.RawMessage) ([]Entry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", AppsKey, err)
	}

	apps := make([]Entry, 0, len(items))
	for i, item := range items {
		if schema.KindOf(item) != schema.KindObject {
			value, err := compact(item)
			if err != nil {
				return nil, fmt.Errorf("decoding app[%d]: %w", i, err)
			}
			apps = append(apps, Entry{raw: value})
			continue
		}
		var obj Object
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, fmt.Errorf("decoding app[%d]: %w", i, err)
		}
		apps = append(apps, Entry{Object: obj})
	}
	return apps, nil
}

// Keys returns the top-level keys in order.
func (d *Document) Keys() []string {
	return d.top.Keys()
}

// Get returns a release-wide top-level value.
func (d *Document) Get(key string) (json.RawMessage, bool) {
	if key == AppsKey {
		return nil, false
	}
	return d.top.Get(key)
}

// Clone deep-copies the document.
func (d *Document) Clone() *Document {
	apps := make([]Entry, len(d.Apps))
	for i, e := range d.Apps {
		apps[i] = e.Clone()
	}
	return &Document{top: d.top.Clone(), Apps: apps}
}

// WithApps returns a copy of the document's top-level keys holding apps.
func (d *Document) WithApps(apps []Entry) *Document {
	return &Document{top: d.top.Clone(), Apps: apps}
}

func (d *Document) object() (Object, error) {
	apps, err := MarshalValue(d.Apps)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", AppsKey, err)
	}
	out := d.top.Clone()
	out.Set(AppsKey, apps)
	return out, nil
}

// EncodeCompact writes the document without any insignificant whitespace.
func (d *Document) EncodeCompact() ([]byte, error) {
	obj, err := d.object()
	if err != nil {
		return nil, err
	}
	return obj.MarshalJSON()
}

// Encode writes the document indented by two spaces with a trailing newline.
func (d *Document) Encode() ([]byte, error) {
	raw, err := d.EncodeCompact()
	if err != nil {
		return nil, err
	}
	return indent(raw)
}

// WriteTo writes the indented encoding to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// WriteFile writes the indented encoding to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
