package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

// SettingsForm is how additionalSettings is stored in the entry.
type SettingsForm int

const (
	SettingsAbsent SettingsForm = iota
	SettingsString
	SettingsObject
	SettingsOther
)

// Settings returns the decoded additionalSettings of the entry. The blob may
// be stored as a JSON-encoded string or directly as an object. An absent
// blob decodes to an empty map.
func (e Entry) Settings() (map[string]any, SettingsForm, error) {
	raw, ok := e.Get(schema.FieldAdditionalSettings)
	if !ok {
		return map[string]any{}, SettingsAbsent, nil
	}

	switch schema.KindOf(raw) {
	case schema.KindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, SettingsString, err
		}
		settings, err := decodeSettings([]byte(s))
		if err != nil {
			return nil, SettingsString, fmt.Errorf("additionalSettings is not valid JSON: %w", err)
		}
		return settings, SettingsString, nil
	case schema.KindObject:
		settings, err := decodeSettings(raw)
		return settings, SettingsObject, err
	default:
		return nil, SettingsOther, fmt.Errorf("additionalSettings must be a string or an object, got %s", schema.KindOf(raw))
	}
}

func decodeSettings(data []byte) (map[string]any, error) {
	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, fmt.Errorf("expected an object")
	}
	return settings, nil
}

// SettingsObject returns additionalSettings as an ordered object, keeping the
// key order of the stored blob.
func (e Entry) SettingsObject() (Object, error) {
	raw, ok := e.Get(schema.FieldAdditionalSettings)
	if !ok {
		return Object{}, nil
	}
	if schema.KindOf(raw) == schema.KindString {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		raw = []byte(s)
	}
	var obj Object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("additionalSettings: %w", err)
	}
	return obj, nil
}

// StringifySettings returns the entry with additionalSettings rewritten as a
// compact JSON-encoded string, "{}" when the entry has none. This is the form
// the app expects on import.
func (e Entry) StringifySettings() (Entry, error) {
	obj, err := e.SettingsObject()
	if err != nil {
		return Entry{}, err
	}
	inner, err := obj.MarshalJSON()
	if err != nil {
		return Entry{}, err
	}
	encoded, err := MarshalValue(string(inner))
	if err != nil {
		return Entry{}, err
	}
	out := e.Clone()
	out.Set(schema.FieldAdditionalSettings, encoded)
	return out, nil
}

// ComparableJSON renders the entry for change detection: meta stripped,
// additionalSettings decoded when it holds JSON, object keys sorted.
func (e Entry) ComparableJSON() ([]byte, error) {
	var v map[string]any
	data, err := e.WithoutMeta().MarshalJSON()
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if s, ok := v[schema.FieldAdditionalSettings].(string); ok {
		var settings any
		if err := json.Unmarshal([]byte(s), &settings); err == nil {
			v[schema.FieldAdditionalSettings] = settings
		}
	}

	// Map keys encode sorted.
	out, err := MarshalValue(v)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSpace(out), nil
}
