package cmdutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/testutil"
)

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "apps.json", testutil.Document(testutil.App))
		doc, err := LoadDocument(path)
		require.NoError(t, err)
		assert.Len(t, doc.Apps, 1)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadDocument(filepath.Join(dir, "missing.json"))
		assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
		assert.ErrorIs(t, err, oerrors.ErrNotFound)
	})

	t.Run("malformed", func(t *testing.T) {
		path := testutil.WriteFile(t, dir, "bad.json", `{"app": []}`)
		_, err := LoadDocument(path)
		assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
		assert.ErrorContains(t, err, `no "apps" key`)
	})
}

func TestRequireValid(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "apps.json", testutil.Document(testutil.App, testutil.App))
	doc, err := LoadDocument(path)
	require.NoError(t, err)

	report, err := RequireValid(doc, path)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
	require.NotNil(t, report)
	assert.Len(t, report.Errors(), 1, "duplicate id")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")

	require.NoError(t, WriteFile(path, []byte("{}")))
	assert.Equal(t, "{}", testutil.ReadFile(t, dir, filepath.Join("nested", "out.json")))
}
