// Package catalog holds the application document model: order-preserving
// JSON objects, entry accessors and the release variant selector.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	ojson "github.com/virtuald/go-ordered-json"
)

// Field is one key/value pair of a JSON object. Value is compact JSON.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Object is a JSON object that remembers key order.
type Object []Field

// Get returns the raw value stored under key.
func (o Object) Get(key string) (json.RawMessage, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns the keys in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, f := range o {
		keys[i] = f.Key
	}
	return keys
}

// Set replaces the value of key in place, or appends it.
func (o *Object) Set(key string, value json.RawMessage) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = value
			return
		}
	}
	*o = append(*o, Field{Key: key, Value: value})
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	for i := range *o {
		if (*o)[i].Key == key {
			*o = append((*o)[:i], (*o)[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with o.
func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for i, f := range o {
		out[i] = Field{Key: f.Key, Value: bytes.Clone(f.Value)}
	}
	return out
}

// Equal reports whether both objects hold the same keys in the same order
// with byte-identical values.
func (o Object) Equal(other Object) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i].Key != other[i].Key || !bytes.Equal(o[i].Value, other[i].Value) {
			return false
		}
	}
	return true
}

func (o Object) ordered() ojson.OrderedObject {
	members := make(ojson.OrderedObject, len(o))
	for i, f := range o {
		value := f.Value
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		members[i] = ojson.Member{Key: f.Key, Value: value}
	}
	return members
}

// MarshalJSON writes the object compactly in key order.
func (o Object) MarshalJSON() ([]byte, error) {
	return MarshalValue(o.ordered())
}

// UnmarshalJSON reads an object, keeping key order at every depth. A
// repeated key keeps its first position and its last value.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := ojson.NewDecoder(bytes.NewReader(data))
	dec.UseOrderedObject()
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected data after object")
	}
	members, ok := v.(ojson.OrderedObject)
	if !ok {
		return fmt.Errorf("expected object, got %s", kindName(v))
	}

	obj := make(Object, 0, len(members))
	for _, m := range members {
		value, err := MarshalValue(m.Value)
		if err != nil {
			return fmt.Errorf("decoding %q: %w", m.Key, err)
		}
		obj.Set(m.Key, value)
	}
	*o = obj
	return nil
}

func kindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}

// MarshalValue encodes v compactly without HTML escaping. Ordered objects
// keep their key order.
func MarshalValue(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := ojson.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func compact(raw []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := ojson.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func indent(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := ojson.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
