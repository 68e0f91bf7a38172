// Package schema is the registry of recognized application entry fields,
// meta keys and their defaults, override sources, categories and
// additionalSettings keys. It holds declarative data and lookups only.
package schema

import "strings"

// Kind is the JSON kind of a document value.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
	KindNull
	KindArray
	KindObject
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf reports the kind of a raw JSON value from its first significant byte.
func KindOf(raw []byte) Kind {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '"':
			return KindString
		case '{':
			return KindObject
		case '[':
			return KindArray
		case 't', 'f':
			return KindBool
		case 'n':
			return KindNull
		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return KindNumber
		default:
			return KindInvalid
		}
	}
	return KindInvalid
}

func kindsString(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	if len(names) <= 1 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
