package resolver

import (
	"strings"
)

// Settings is a decoded additionalSettings blob.
type Settings map[string]any

// Bool returns the boolean under key, or def when unset or not a boolean.
func (s Settings) Bool(key string, def bool) bool {
	if b, ok := s[key].(bool); ok {
		return b
	}
	return def
}

// String returns the string under key, "" when unset or not a string.
func (s Settings) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Objects returns the object items of the list under key.
func (s Settings) Objects(key string) []Settings {
	items, _ := s[key].([]any)
	var out []Settings
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, Settings(obj))
		}
	}
	return out
}

// RequestHeaders parses the requestHeader list of "Name: value" strings.
func (s Settings) RequestHeaders() map[string]string {
	headers := make(map[string]string)
	for _, h := range s.Objects("requestHeader") {
		name, value, ok := strings.Cut(h.String("requestHeader"), ": ")
		if ok {
			headers[name] = value
		}
	}
	return headers
}
