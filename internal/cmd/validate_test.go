package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/testutil"
)

const missingURLApp = `{"id": "org.example.broken", "author": "a", "name": "Broken"}`

func TestValidate_Valid(t *testing.T) {
	dir, _ := testutil.Workspace(t, testutil.Document(testutil.App))

	stdout, _, err := run(t, dir, "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 app(s) checked, 0 error(s), 0 warning(s)")
}

func TestValidate_Errors(t *testing.T) {
	dir, _ := testutil.Workspace(t, testutil.Document(testutil.App, missingURLApp))

	stdout, _, err := run(t, dir, "validate")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(err))
	assert.ErrorIs(t, err, oerrors.ErrValidation)
	assert.True(t, oerrors.IsPrinted(err), "the report already shows the errors")
	assert.Contains(t, stdout, `missing required field "url"`)
	assert.Contains(t, stdout, "Broken")
}

func TestValidate_JSONOutput(t *testing.T) {
	dir, _ := testutil.Workspace(t, testutil.Document(testutil.App, missingURLApp))

	stdout, _, err := run(t, dir, "validate", "--output", "json")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(err))

	var report struct {
		Valid    bool `json:"valid"`
		Checked  int  `json:"checked"`
		Errors   int  `json:"errors"`
		Findings []struct {
			Severity string `json:"severity"`
			Entry    string `json:"entry"`
			Index    int    `json:"index"`
			Field    string `json:"field"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.False(t, report.Valid)
	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, 1, report.Errors)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, "error", report.Findings[0].Severity)
	assert.Equal(t, 1, report.Findings[0].Index)
	assert.Equal(t, "url", report.Findings[0].Field)
}

func TestValidate_YAMLOutput(t *testing.T) {
	dir, _ := testutil.Workspace(t, testutil.Document(testutil.App))

	stdout, _, err := run(t, dir, "validate", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "valid: true")
	assert.Contains(t, stdout, "findings: []")
}

func TestValidate_BadOutputFormat(t *testing.T) {
	dir, _ := testutil.Workspace(t, testutil.Document(testutil.App))

	_, _, err := run(t, dir, "validate", "-o", "xml")
	assert.Equal(t, oerrors.ExitGeneralError, exitCode(err))
}

func TestValidate_MalformedDocument(t *testing.T) {
	dir, _ := testutil.Workspace(t, `{"apps": [`)

	_, _, err := run(t, dir, "validate")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(err))
}

func TestValidate_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "apps.json", testutil.Document(testutil.App))

	_, _, err := run(t, dir, "validate", "apps.json")
	assert.NoError(t, err)
}
