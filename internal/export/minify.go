// Package export produces the downstream artifacts of the applications
// document: minified release files, the documentation table, the README and
// Obtainium deep links.
package export

import (
	"fmt"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
)

// Release returns the entries of variant v in import form: meta dropped and
// additionalSettings as a compact JSON string.
func Release(doc *catalog.Document, v catalog.Variant) ([]catalog.Entry, error) {
	apps := []catalog.Entry{}
	for i, e := range doc.Apps {
		if !e.IsObject() || !catalog.Includes(e, v) {
			continue
		}
		out, err := e.WithoutMeta().StringifySettings()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Identifier(i), err)
		}
		apps = append(apps, out)
	}
	return apps, nil
}

// Minify renders the release document for variant v without whitespace and
// without a trailing newline. It returns the encoded document and the number
// of entries included.
func Minify(doc *catalog.Document, v catalog.Variant) ([]byte, int, error) {
	if v == catalog.VariantTable {
		return nil, 0, fmt.Errorf("%s is not a release variant", v)
	}
	apps, err := Release(doc, v)
	if err != nil {
		return nil, 0, err
	}
	data, err := doc.WithApps(apps).EncodeCompact()
	if err != nil {
		return nil, 0, err
	}
	return data, len(apps), nil
}
