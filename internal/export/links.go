package export

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
)

// DefaultRedirectURL is the page that forwards deep links into the app.
const DefaultRedirectURL = "http://apps.obtainium.imranr.dev/redirect.html"

// obtainiumScheme prefixes the app JSON inside a deep link.
const obtainiumScheme = "obtainium://app/"

// Link is an entry's display name and its "add to Obtainium" URL.
type Link struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// ObtainiumLink builds the deep link that imports e into the app.
func ObtainiumLink(e catalog.Entry, redirectURL string) (string, error) {
	if redirectURL == "" {
		redirectURL = DefaultRedirectURL
	}
	app, err := e.WithoutMeta().StringifySettings()
	if err != nil {
		return "", err
	}
	data, err := app.MarshalJSON()
	if err != nil {
		return "", err
	}
	return redirectURL + "?r=" + obtainiumScheme + quote(asciiJSON(string(data))), nil
}

// Links returns the deep link of every object entry in apps.
func Links(apps []catalog.Entry, redirectURL string) ([]Link, error) {
	links := make([]Link, 0, len(apps))
	for i, e := range apps {
		if !e.IsObject() {
			continue
		}
		u, err := ObtainiumLink(e, redirectURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Identifier(i), err)
		}
		links = append(links, Link{Name: e.Name(), URL: u})
	}
	return links, nil
}

// asciiJSON escapes every non-ASCII rune of a JSON text as \uXXXX, using
// surrogate pairs above the BMP. Non-ASCII runes only occur inside strings.
func asciiJSON(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case r > 0xFFFF:
			r -= 0x10000
			fmt.Fprintf(&b, `\u%04x\u%04x`, 0xD800+(r>>10), 0xDC00+(r&0x3FF))
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String()
}

// quote percent-encodes every byte except letters, digits, "_.-~" and "/".
func quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
			c == '_' || c == '.' || c == '-' || c == '~' || c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}
