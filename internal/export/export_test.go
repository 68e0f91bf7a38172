package export_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/export"
)

const fixture = `{
  "apps": [
    {"id": "a", "url": "https://github.com/x/a", "author": "x", "name": "Alpha",
     "additionalSettings": {"includePrereleases": false},
     "categories": ["Emulator"],
     "meta": {"excludeFromExport": false, "includeInDualScreen": false}},
    {"id": "b", "url": "https://github.com/x/b", "author": "x", "name": "beta",
     "additionalSettings": "{\"apkFilterRegEx\": \"arm64\"}",
     "categories": ["Emulator", "Frontend"],
     "meta": {"nameOverride": "Beta Launcher", "urlOverride": "https://beta.example"}},
    {"id": "c", "url": "https://github.com/x/c", "author": "x", "name": "Gamma",
     "categories": ["Utilities"],
     "meta": {"excludeFromExport": true, "excludeFromTable": true}}
  ],
  "version": "1"
}`

func load(t *testing.T) *catalog.Document {
	t.Helper()
	doc, err := catalog.Decode([]byte(fixture))
	require.NoError(t, err)
	return doc
}

func TestMinify(t *testing.T) {
	doc := load(t)

	data, n, err := export.Minify(doc, catalog.VariantStandard)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t,
		`{"apps":[`+
			`{"id":"a","url":"https://github.com/x/a","author":"x","name":"Alpha","additionalSettings":"{\"includePrereleases\":false}","categories":["Emulator"]},`+
			`{"id":"b","url":"https://github.com/x/b","author":"x","name":"beta","additionalSettings":"{\"apkFilterRegEx\":\"arm64\"}","categories":["Emulator","Frontend"]}`+
			`],"version":"1"}`,
		string(data))

	data, n, err = export.Minify(doc, catalog.VariantDualScreen)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotContains(t, string(data), `"id":"a"`)
	assert.False(t, strings.HasSuffix(string(data), "\n"))

	_, _, err = export.Minify(doc, catalog.VariantTable)
	assert.Error(t, err)
}

func TestMinify_AbsentSettingsBecomeEmptyObject(t *testing.T) {
	doc, err := catalog.Decode([]byte(`{"apps":[{"id":"a","name":"A"}]}`))
	require.NoError(t, err)

	data, _, err := export.Minify(doc, catalog.VariantStandard)
	require.NoError(t, err)
	assert.Equal(t, `{"apps":[{"id":"a","name":"A","additionalSettings":"{}"}]}`, string(data))
}

func TestObtainiumLink(t *testing.T) {
	doc, err := catalog.Decode([]byte(`{"apps":[{"id":"a b","name":"Café","meta":{"excludeFromTable":true}}]}`))
	require.NoError(t, err)

	link, err := export.ObtainiumLink(doc.Apps[0], "")
	require.NoError(t, err)
	assert.Equal(t,
		"http://apps.obtainium.imranr.dev/redirect.html?r=obtainium://app/"+
			"%7B%22id%22%3A%22a%20b%22%2C%22name%22%3A%22Caf%5Cu00e9%22%2C%22additionalSettings%22%3A%22%7B%7D%22%7D",
		link)

	link, err = export.ObtainiumLink(doc.Apps[0], "https://example.com/r")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://example.com/r?r=obtainium://app/%7B"))
}

func TestLinks(t *testing.T) {
	links, err := export.Links(load(t).Apps, "")
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "Alpha", links[0].Name)
	assert.Equal(t, "beta", links[1].Name)
	assert.Contains(t, links[2].URL, "obtainium://app/")
}

func TestTable(t *testing.T) {
	out, err := export.Table(load(t).Apps, "")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "## Applications", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "### Emulator", lines[2])
	assert.Equal(t, "| Application Name | Add to Obtainium | Included in export json? | Included in DS json? |", lines[4])

	// rows sorted case-insensitively by display name
	assert.True(t, strings.HasPrefix(lines[6], `| <a href="https://github.com/x/a">Alpha</a> | <a href="http://apps.obtainium.imranr.dev/redirect.html?r=obtainium://app/`))
	assert.True(t, strings.HasSuffix(lines[6], "| ✅ | ❌ |"))
	assert.True(t, strings.HasPrefix(lines[7], `| <a href="https://beta.example">Beta Launcher</a> |`))
	assert.True(t, strings.HasSuffix(lines[7], "| ✅ | ✅ |"))

	assert.Contains(t, out, "### Frontend\n")
	assert.NotContains(t, out, "### Utilities")
	assert.NotContains(t, out, "Gamma")
	assert.True(t, strings.HasSuffix(out, "|\n"))
}

func TestAppTable(t *testing.T) {
	apps := load(t).Apps

	out, err := export.AppTable(nil, "", true)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = export.AppTable(apps, "", false)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[2], "Alpha")
	assert.Contains(t, lines[3], "Beta Launcher")
	assert.Contains(t, lines[4], "Gamma")
	assert.True(t, strings.HasSuffix(lines[4], "| ❌ | ❌ |"))

	noCategory, err := catalog.Decode([]byte(`{"apps":[{"id":"z","name":"Zed"}]}`))
	require.NoError(t, err)
	out, err = export.AppTable(noCategory.Apps, "", true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "### Other\n"))
}

func TestStitch(t *testing.T) {
	assert.Equal(t, "# Title\n\nBody\n\nFooter\n", export.Stitch([]string{"# Title\n\n", "  Body\n", "Footer"}))
}

func TestStitchFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(a, []byte("A\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("\nB"), 0o644))

	out, err := export.StitchFiles([]string{a, b})
	require.NoError(t, err)
	assert.Equal(t, "A\n\nB\n", out)

	_, err = export.StitchFiles([]string{a, filepath.Join(dir, "missing.md")})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}
